package demangle

import "testing"

type sample struct{}

func TestTypeName(t *testing.T) {
	for _, tc := range []struct {
		v    any
		want string
	}{
		{sample{}, "demangle.sample"},
		{&sample{}, "demangle.sample"},
		{42, "int"},
		{"s", "string"},
		{nil, "<nil>"},
	} {
		if got := TypeName(tc.v); got != tc.want {
			t.Errorf("TypeName(%#v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
