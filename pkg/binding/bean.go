package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/validlite/pkg/result"
)

// BeanResult collects errors of a struct target. Field paths use the json
// tag name of each struct field, or the Go field name without one.
type BeanResult struct {
	collector
	target    any
	validated *result.ValidatedResult
}

var _ Result = (*BeanResult)(nil)

// NewBeanResult creates an empty result for target, usually a pointer to struct.
func NewBeanResult(target any, objectName string, opts ...Option) *BeanResult {
	if objectName == "" && target != nil {
		objectName = defaultObjectName(reflect.TypeOf(target))
	}
	r := &BeanResult{target: target}
	r.collector = newCollector(objectName, beanAccessor{target}, opts)
	return r
}

// Target returns the bound struct.
func (r *BeanResult) Target() any { return r.target }

// Validated returns the latest validation result attached to the bean.
func (r *BeanResult) Validated() *result.ValidatedResult { return r.validated }

// SetValidated attaches vr, replacing any previous result.
func (r *BeanResult) SetValidated(vr *result.ValidatedResult) { r.validated = vr }

// Model exports the target and the result under their model keys.
func (r *BeanResult) Model() map[string]any { return r.model(r.target, r) }

func defaultObjectName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return "object"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

type beanAccessor struct{ target any }

func (a beanAccessor) value(field string) (any, error) {
	v, err := walk(reflect.ValueOf(a.target), field)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	if !v.CanInterface() {
		return nil, fmt.Errorf("%w: %q", ErrNotReadable, field)
	}
	return v.Interface(), nil
}

func (a beanAccessor) fieldType(field string) (reflect.Type, error) {
	t := reflect.TypeOf(a.target)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	for _, seg := range splitPath(field) {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if seg.name != "" {
			if t.Kind() != reflect.Struct {
				return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
			sf, ok := lookupField(t, seg.name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
			t = sf.Type
		}
		for range seg.keys {
			for t.Kind() == reflect.Pointer {
				t = t.Elem()
			}
			switch t.Kind() {
			case reflect.Slice, reflect.Array, reflect.Map:
				t = t.Elem()
			default:
				return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
		}
	}
	return t, nil
}

type segment struct {
	name string
	keys []string
}

// splitPath splits "items[0].name" into its segments.
func splitPath(path string) []segment {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	out := make([]segment, 0, len(parts))
	for _, p := range parts {
		seg := segment{}
		name, rest, _ := strings.Cut(p, "[")
		seg.name = name
		for rest != "" {
			key, after, ok := strings.Cut(rest, "]")
			if !ok {
				break
			}
			seg.keys = append(seg.keys, key)
			rest = strings.TrimPrefix(after, "[")
		}
		out = append(out, seg)
	}
	return out
}

func walk(v reflect.Value, path string) (reflect.Value, error) {
	for _, seg := range splitPath(path) {
		v = deref(v)
		if !v.IsValid() {
			return reflect.Value{}, nil
		}
		if seg.name != "" {
			if v.Kind() != reflect.Struct {
				return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
			}
			sf, ok := lookupField(v.Type(), seg.name)
			if !ok {
				return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
			}
			v = v.FieldByIndex(sf.Index)
		}
		for _, key := range seg.keys {
			v = deref(v)
			switch v.Kind() {
			case reflect.Slice, reflect.Array:
				i, err := strconv.Atoi(key)
				if err != nil || i < 0 || i >= v.Len() {
					return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
				}
				v = v.Index(i)
			case reflect.Map:
				if v.Type().Key().Kind() != reflect.String {
					return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
				}
				v = v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
			default:
				return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
			}
		}
	}
	return v, nil
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == name {
			return sf, true
		}
	}
	return t.FieldByName(name)
}
