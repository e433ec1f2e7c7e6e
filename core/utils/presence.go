package utils

import (
	"reflect"
	"strings"
)

// IsPresent reports whether v carries a meaningful value.
//
// nil, zero values, false, whitespace-only strings and empty collections are
// absent. Pointers and interfaces are followed.
func IsPresent(v any) bool {
	return present(reflect.ValueOf(v))
}

// IsNotNil is a looser presence test that only treats nil as absent.
// Empty strings, zero numbers and false count as present.
func IsNotNil(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

func present(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return present(rv.Elem())
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Struct:
		if z, ok := rv.Interface().(interface{ IsZero() bool }); ok {
			return !z.IsZero()
		}
		return !rv.IsZero()
	}
	return !rv.IsZero()
}
