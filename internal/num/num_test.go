package num

import (
	"math"
	"testing"
)

func TestSoftEqual(t *testing.T) {
	se := NewSoftEqual()
	for _, tc := range []struct {
		a, b float64
		want bool
	}{
		{0, 0, true},
		{1, 1, true},
		{1, 1 + 1e-13, true},
		{1, 1 + 1e-11, false},
		{-1e8, -1e8 * (1 + 1e-13), true},
		{1e-16, -1e-16, true}, // both below absolute threshold
		{1e-16, 1e-10, false},
		{math.NaN(), 1, false},
		{math.NaN(), math.NaN(), false},
		{math.Inf(1), math.Inf(1), false},
	} {
		if got := se.Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%g, %g) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		// commutativity
		if got := se.Compare(tc.b, tc.a); got != tc.want {
			t.Errorf("Compare(%g, %g) = %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestSoftEqualRel(t *testing.T) {
	se := NewSoftEqualRel(1e-3)
	if !se.Compare(100, 100.05) {
		t.Error("expected 100 ~ 100.05 at rel 1e-3")
	}
	if se.Compare(100, 100.2) {
		t.Error("expected 100 != 100.2 at rel 1e-3")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive tolerance")
		}
	}()
	NewSoftEqualRel(0)
}

func TestSoftEqual32(t *testing.T) {
	se := NewSoftEqual32()
	if !se.Compare(1, 1+1e-7) {
		t.Error("expected 1 ~ 1+1e-7 for float32")
	}
	if se.Compare(1, 1.001) {
		t.Error("expected 1 != 1.001 for float32")
	}
}

func TestIpow(t *testing.T) {
	if got := Ipow(3.0, 2); got != 9.0 {
		t.Errorf("Ipow(3.0, 2) = %v", got)
	}
	if got := Ipow(2, 8); got != 256 {
		t.Errorf("Ipow(2, 8) = %v", got)
	}
	if got := Ipow(7.5, 0); got != 1 {
		t.Errorf("Ipow(7.5, 0) = %v", got)
	}
	if got := Ipow(-2, 3); got != -8 {
		t.Errorf("Ipow(-2, 3) = %v", got)
	}
	if got := Ipow(10.0, 5); got != 1e5 {
		t.Errorf("Ipow(10.0, 5) = %v", got)
	}
}
