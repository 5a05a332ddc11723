package binding

import (
	"strings"

	"github.com/dmitrymomot/validlite/pkg/result"
)

// Sink is the destination Binder registers violations into.
type Sink interface {
	NestedPath() string
	PushNestedPath(field string) error
	PopNestedPath() error

	// HasBindingFailure reports whether field, relative to the nested path,
	// already carries a binding failure.
	HasBindingFailure(field string) bool

	// Register records one violation of field, relative to the nested path.
	Register(field string, value any, f result.Fragment, prefix string) error
}

// Registering returns a Sink that adds fully built errors to r: field errors
// at the qualified path, or object errors when the path is empty.
func Registering(r Result) Sink { return registering{r} }

// Rejecting returns a Sink that reports each violation through
// Errors.RejectValue, letting e extract the rejected value itself.
func Rejecting(e Errors) Sink { return rejecting{e} }

type registering struct{ r Result }

func (s registering) NestedPath() string                { return s.r.NestedPath() }
func (s registering) PushNestedPath(field string) error { return s.r.PushNestedPath(field) }
func (s registering) PopNestedPath() error              { return s.r.PopNestedPath() }

func (s registering) HasBindingFailure(field string) bool {
	return hasBindingFailure(s.r, field)
}

func (s registering) Register(field string, value any, f result.Fragment, prefix string) error {
	qualified := strings.TrimSuffix(s.r.NestedPath()+field, ".")
	src := f
	if qualified == "" {
		s.r.AddError(Error{
			Object:         s.r.ObjectName(),
			Codes:          s.r.ResolveObjectCodes(prefixed(prefix, f.ID())),
			Arguments:      f.Arguments(),
			DefaultMessage: f.Message(),
			Source:         &src,
		})
		return nil
	}
	s.r.AddError(Error{
		Object:         s.r.ObjectName(),
		Field:          qualified,
		Rejected:       value,
		Codes:          s.r.ResolveMessageCodes(prefixed(prefix, f.Code()), field),
		Arguments:      f.Arguments(),
		DefaultMessage: f.Message(),
		Source:         &src,
	})
	return nil
}

type rejecting struct{ e Errors }

func (s rejecting) NestedPath() string                { return s.e.NestedPath() }
func (s rejecting) PushNestedPath(field string) error { return s.e.PushNestedPath(field) }
func (s rejecting) PopNestedPath() error              { return s.e.PopNestedPath() }

func (s rejecting) HasBindingFailure(field string) bool {
	return hasBindingFailure(s.e, field)
}

func (s rejecting) Register(field string, _ any, f result.Fragment, _ string) error {
	return s.e.RejectValue(field, f.Code(), f.Arguments(), f.Message())
}

func hasBindingFailure(e Errors, field string) bool {
	if field == "" && e.NestedPath() == "" {
		return false
	}
	fe, ok := e.FieldError(field)
	return ok && fe.BindingFailure
}

func prefixed(prefix, code string) string {
	if prefix == "" {
		return code
	}
	return prefix + "." + code
}
