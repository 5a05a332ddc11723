package binding

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/dmitrymomot/validlite/pkg/result"
)

// DefaultParameterObject is the object name of request parameter results.
const DefaultParameterObject = "params"

// ParameterResult collects errors of plain request parameters. Its target is
// a flat map from parameter name to value.
type ParameterResult struct {
	collector
	target    map[string]any
	types     map[string]reflect.Type
	validated *result.ValidatedResult
}

var _ Result = (*ParameterResult)(nil)

// NewParameterResult creates an empty parameter result.
func NewParameterResult(objectName string, opts ...Option) *ParameterResult {
	if objectName == "" {
		objectName = DefaultParameterObject
	}
	r := &ParameterResult{
		target: make(map[string]any),
		types:  make(map[string]reflect.Type),
	}
	r.collector = newCollector(objectName, mapAccessor{r}, opts)
	return r
}

// PutParameter records a parameter value and its declared type.
// A nil typ is taken from the value.
func (r *ParameterResult) PutParameter(name string, value any, typ reflect.Type) {
	if typ == nil && value != nil {
		typ = reflect.TypeOf(value)
	}
	r.target[name] = value
	if typ != nil {
		r.types[name] = typ
	}
}

// Target returns a copy of the parameter map.
func (r *ParameterResult) Target() any { return maps.Clone(r.target) }

// Validated returns the first validation result attached to the parameters.
func (r *ParameterResult) Validated() *result.ValidatedResult { return r.validated }

// SetValidated attaches vr unless a result is already attached.
func (r *ParameterResult) SetValidated(vr *result.ValidatedResult) {
	if r.validated == nil {
		r.validated = vr
	}
}

// Model exports a copy of the parameter map and the result.
func (r *ParameterResult) Model() map[string]any { return r.model(r.Target(), r) }

type mapAccessor struct{ r *ParameterResult }

func (a mapAccessor) value(field string) (any, error) {
	if strings.ContainsAny(field, ".[") {
		return nil, fmt.Errorf("%w: %q", ErrNestedOnMap, field)
	}
	return a.r.target[field], nil
}

func (a mapAccessor) fieldType(field string) (reflect.Type, error) {
	if strings.ContainsAny(field, ".[") {
		return nil, fmt.Errorf("%w: %q", ErrNestedOnMap, field)
	}
	return a.r.types[field], nil
}
