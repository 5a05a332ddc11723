package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Convert converts raw request values to typ. Slices accept repeated and
// comma-separated values; pointers are allocated.
func Convert(raw []string, typ reflect.Type) (any, error) {
	v := reflect.New(typ).Elem()
	if err := setValue(v, typ, raw); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func setValue(field reflect.Value, typ reflect.Type, values []string) error {
	if typ.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setValue(field.Elem(), typ.Elem(), values)
	}
	if typ.Kind() == reflect.Slice {
		return setSlice(field, typ, values)
	}
	if len(values) == 0 {
		return nil
	}
	value := values[0]

	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value %q", value)
			}
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}
	return nil
}

func setSlice(field reflect.Value, typ reflect.Type, values []string) error {
	var all []string
	for _, v := range values {
		all = append(all, strings.Split(v, ",")...)
	}

	slice := reflect.MakeSlice(typ, len(all), len(all))
	for i, value := range all {
		if err := setValue(slice.Index(i), typ.Elem(), []string{strings.TrimSpace(value)}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}
