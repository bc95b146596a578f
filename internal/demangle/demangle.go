// Package demangle reports readable type names for diagnostics.
package demangle

import (
	"reflect"
	"strings"
)

// TypeName returns the dynamic type name of v without package paths,
// suitable for error messages. Pointers are dereferenced so *csg.Box
// and csg.Box both report "csg.Box".
func TypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.String()
	// strip vendored or deeply qualified prefixes, keep pkg.Type
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
