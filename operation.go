package validlite

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/validlite/binder"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

// Kind is the role of a parameter in an operation.
type Kind int

const (
	// KindValue is a plain value read from one request source.
	KindValue Kind = iota
	// KindBean is a struct bound from the request and validated by its tags.
	KindBean
	// KindErrors receives the collected errors of the request.
	KindErrors
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindBean:
		return "bean"
	case KindErrors:
		return "errors"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source is where a plain value is read from.
type Source int

const (
	FromQuery Source = iota
	FromPath
	FromHeader
	FromForm
)

// Param declares one parameter of an operation.
type Param struct {
	Name   string
	Kind   Kind
	Source Source
	Type   reflect.Type
	Rules  []rule.Rule
	Groups []string
	// Nested reports the result of a bean under its parameter name, so its
	// errors are addressed as "name.field".
	Nested bool

	binders  []binder.Func
	newValue func() any
}

// Value declares a plain parameter of type T read from source and checked
// against rules. A missing value is passed to the rules as nil.
func Value[T any](name string, source Source, rules ...rule.Rule) Param {
	return Param{
		Name:   name,
		Kind:   KindValue,
		Source: source,
		Type:   reflect.TypeFor[T](),
		Rules:  rules,
	}
}

// Bean declares a struct parameter. The binders fill a new *T in order and
// the result is validated by its struct tags and group rules. The resolved
// argument is the *T.
func Bean[T any](name string, binders ...binder.Func) Param {
	return Param{
		Name:     name,
		Kind:     KindBean,
		Type:     reflect.TypeFor[T](),
		binders:  binders,
		newValue: func() any { return new(T) },
	}
}

// ErrorsParam declares a parameter receiving the request's binding.Result.
// An operation with an errors parameter never fails on validation; the
// handler inspects the errors itself.
func ErrorsParam(name string) Param {
	return Param{Name: name, Kind: KindErrors}
}

// InGroups restricts validation to the given groups.
func (p Param) InGroups(groups ...string) Param {
	p.Groups = append([]string(nil), groups...)
	return p
}

// AsNested reports a bean's errors under the parameter name.
func (p Param) AsNested() Param {
	p.Nested = true
	return p
}

// Operation is the ordered parameter list of one handler.
type Operation struct {
	Name   string
	Params []Param
}

// NewOperation declares an operation.
func NewOperation(name string, params ...Param) Operation {
	return Operation{Name: name, Params: params}
}

// Validate checks the declaration: parameters need unique undotted names,
// beans a struct type and at least one binder.
func (op Operation) Validate() error {
	seen := make(map[string]struct{}, len(op.Params))
	for i, p := range op.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: %s: parameter %d has no name", ErrInvalidOperation, op.Name, i)
		}
		if strings.Contains(p.Name, ".") {
			return fmt.Errorf("%w: %s: parameter %q must not contain a dot", ErrInvalidOperation, op.Name, p.Name)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("%w: %s: duplicate parameter %q", ErrInvalidOperation, op.Name, p.Name)
		}
		seen[p.Name] = struct{}{}

		switch p.Kind {
		case KindValue:
			if p.Type == nil {
				return fmt.Errorf("%w: %s: parameter %q has no type", ErrInvalidOperation, op.Name, p.Name)
			}
		case KindBean:
			if p.Type == nil || p.Type.Kind() != reflect.Struct || p.newValue == nil {
				return fmt.Errorf("%w: %s: bean %q must be a struct", ErrInvalidOperation, op.Name, p.Name)
			}
			if len(p.binders) == 0 {
				return fmt.Errorf("%w: %s: bean %q has no binder", ErrInvalidOperation, op.Name, p.Name)
			}
		case KindErrors:
		default:
			return fmt.Errorf("%w: %s: parameter %q has unknown kind %s", ErrInvalidOperation, op.Name, p.Name, p.Kind)
		}
	}
	return nil
}
