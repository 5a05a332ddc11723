package binder

import (
	"reflect"
	"strings"
)

// bindStruct sets the fields of the struct pointed to by v from values,
// looked up by the tagName tag. Conversion failures are collected.
func bindStruct(v any, tagName string, lookup func(param string) ([]string, bool), kind error) error {
	rv, err := structValue(v)
	if err != nil {
		return err
	}
	rt := rv.Type()

	fes := &FieldErrors{Kind: kind}
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		param, skip := parseFieldTag(sf, tagName)
		if skip {
			continue
		}
		values, ok := lookup(param)
		if !ok || len(values) == 0 {
			continue
		}
		if err := setValue(field, sf.Type, values); err != nil {
			fes.Errors = append(fes.Errors, FieldError{
				Field: jsonName(sf),
				Param: param,
				Value: values,
				Err:   err,
			})
		}
	}
	if len(fes.Errors) > 0 {
		return fes
	}
	return nil
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv, nil
}

func parseFieldTag(field reflect.StructField, tagName string) (param string, skip bool) {
	tag := field.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(field.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func valuesLookup(values map[string][]string) func(string) ([]string, bool) {
	return func(param string) ([]string, bool) {
		v, ok := values[param]
		return v, ok
	}
}
