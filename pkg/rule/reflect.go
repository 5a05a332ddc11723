package rule

import (
	"reflect"
	"strconv"
	"unicode/utf8"
)

// indirect dereferences pointers and interfaces; ok is false for nil.
func indirect(value any) (reflect.Value, bool) {
	v := reflect.ValueOf(value)
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// length returns the length of strings (in runes), slices, arrays, maps and channels.
func length(value any) (int, bool) {
	v, ok := indirect(value)
	if !ok {
		return 0, false
	}
	switch v.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(v.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return v.Len(), true
	default:
		return 0, false
	}
}

// number converts numeric values and numeric strings to float64.
func number(value any) (float64, bool) {
	v, ok := indirect(value)
	if !ok {
		return 0, false
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// text returns the string form of string-kinded values.
func text(value any) (string, bool) {
	v, ok := indirect(value)
	if !ok || v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}
