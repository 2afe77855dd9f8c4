// Package reflectutil holds the reflection helpers shared by field descriptors.
package reflectutil

import (
	"math"
	"reflect"
)

// IsAbsent reports whether v is the absence sentinel: an untyped nil or a nil
// pointer wrapped in an interface. Nil maps and slices are values, not absent.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Indirect follows pointers until it reaches a non-pointer value.
// It returns an invalid Value if a nil pointer is reached.
func Indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// StringValue returns the text held by v if its underlying kind is string.
func StringValue(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := Indirect(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// IsIntegerKind reports whether k is a signed or unsigned integer kind.
func IsIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsFloatKind reports whether k is a floating point kind.
func IsFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// Int64Value widens an integer held by v to int64.
// ok is false if v is not an integer or an unsigned value overflows int64.
func Int64Value(v any) (n int64, ok bool) {
	rv := Indirect(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanInt():
		return rv.Int(), true
	case rv.CanUint():
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

// Float64Value widens a float or integer held by v to float64.
func Float64Value(v any) (float64, bool) {
	rv := Indirect(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanFloat():
		return rv.Float(), true
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	}
	return 0, false
}

// Sequence returns the elements of a slice or array held by v.
// ok is false for any other kind, including strings.
func Sequence(v any) (items []any, ok bool) {
	rv := Indirect(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items = make([]any, rv.Len())
	for i := range rv.Len() {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// Iterable returns the members of a slice, array, or the keys of a map held
// by v. Strings are not treated as collections.
func Iterable(v any) (items []any, ok bool) {
	if items, ok := Sequence(v); ok {
		return items, true
	}
	rv := Indirect(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	items = make([]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		items = append(items, iter.Key().Interface())
	}
	return items, true
}

// JSONSchemaType returns the JSON Schema type string for a Go type.
func JSONSchemaType(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Kind() == reflect.Pointer {
		return JSONSchemaType(t.Elem())
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct, reflect.Interface:
		return "object"
	}
	return ""
}
