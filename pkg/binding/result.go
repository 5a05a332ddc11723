package binding

import (
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/validlite/pkg/message"
)

// ModelKeyPrefix prefixes the key of a Result in its exported model.
const ModelKeyPrefix = "binding.Result."

// Errors is the minimal error collection of a validated object.
// Field names are relative to the current nested path.
type Errors interface {
	ObjectName() string
	NestedPath() string
	PushNestedPath(subPath string) error
	PopNestedPath() error
	Reject(code string, args []any, defaultMessage string)
	RejectValue(field, code string, args []any, defaultMessage string) error
	FieldError(field string) (Error, bool)
	HasErrors() bool
	ErrorCount() int
	AllErrors() []Error
}

// Result is an Errors collection that also accepts fully built errors and
// exposes its target.
type Result interface {
	Errors
	Target() any
	FieldValue(field string) (any, error)
	FieldType(field string) (reflect.Type, error)
	AddError(e Error)
	ResolveMessageCodes(code, field string) []string
	ResolveObjectCodes(code string) []string
	GlobalErrors() []Error
	FieldErrors(field string) []Error
	ValidationErrors() []Error
	BindingFailures() []Error
	Model() map[string]any
}

// Option configures a Result.
type Option func(*collector)

// WithCodesResolver sets the message codes resolver.
func WithCodesResolver(r message.CodesResolver) Option {
	return func(c *collector) {
		if r != nil {
			c.resolver = r
		}
	}
}

type accessor interface {
	value(field string) (any, error)
	fieldType(field string) (reflect.Type, error)
}

// collector holds the state shared by every Result implementation.
type collector struct {
	objectName string
	nestedPath string
	stack      []string
	errs       []Error
	resolver   message.CodesResolver
	access     accessor
}

func newCollector(objectName string, access accessor, opts []Option) collector {
	c := collector{
		objectName: objectName,
		resolver:   message.DefaultCodesResolver{},
		access:     access,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *collector) ObjectName() string { return c.objectName }

func (c *collector) NestedPath() string { return c.nestedPath }

func (c *collector) PushNestedPath(subPath string) error {
	c.stack = append(c.stack, c.nestedPath)
	c.nestedPath = canonicalPath(c.nestedPath + subPath)
	return nil
}

func (c *collector) PopNestedPath() error {
	if len(c.stack) == 0 {
		return ErrNoNestedPath
	}
	c.nestedPath = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

func (c *collector) fixedField(field string) string {
	if field != "" {
		return c.nestedPath + field
	}
	return strings.TrimSuffix(c.nestedPath, ".")
}

func (c *collector) FieldValue(field string) (any, error) {
	return c.access.value(c.fixedField(field))
}

func (c *collector) FieldType(field string) (reflect.Type, error) {
	return c.access.fieldType(c.fixedField(field))
}

func (c *collector) Reject(code string, args []any, defaultMessage string) {
	c.AddError(Error{
		Object:         c.objectName,
		Codes:          c.ResolveObjectCodes(code),
		Arguments:      slices.Clone(args),
		DefaultMessage: defaultMessage,
	})
}

func (c *collector) RejectValue(field, code string, args []any, defaultMessage string) error {
	if c.nestedPath == "" && field == "" {
		c.Reject(code, args, defaultMessage)
		return nil
	}
	fixed := c.fixedField(field)
	value, err := c.access.value(fixed)
	if err != nil {
		return err
	}
	c.AddError(Error{
		Object:         c.objectName,
		Field:          fixed,
		Rejected:       value,
		Codes:          c.ResolveMessageCodes(code, field),
		Arguments:      slices.Clone(args),
		DefaultMessage: defaultMessage,
	})
	return nil
}

// Savepoint marks the error list and nested path of a Result.
type Savepoint struct {
	errs       int
	depth      int
	nestedPath string
}

// Savepoint captures the current state for a later Restore.
func (c *collector) Savepoint() Savepoint {
	return Savepoint{errs: len(c.errs), depth: len(c.stack), nestedPath: c.nestedPath}
}

// Restore drops every error registered after sp and returns to its nested path.
func (c *collector) Restore(sp Savepoint) {
	if sp.errs <= len(c.errs) {
		c.errs = c.errs[:sp.errs]
	}
	if sp.depth <= len(c.stack) {
		c.stack = c.stack[:sp.depth]
	}
	c.nestedPath = sp.nestedPath
}

func (c *collector) AddError(e Error) {
	if e.Object == "" {
		e.Object = c.objectName
	}
	c.errs = append(c.errs, e)
}

func (c *collector) ResolveMessageCodes(code, field string) []string {
	fixed := c.fixedField(field)
	typ, _ := c.access.fieldType(fixed)
	return c.resolver.ResolveCodes(code, c.objectName, fixed, typ)
}

func (c *collector) ResolveObjectCodes(code string) []string {
	return c.resolver.ResolveObjectCodes(code, c.objectName)
}

func (c *collector) HasErrors() bool { return len(c.errs) > 0 }

func (c *collector) ErrorCount() int { return len(c.errs) }

func (c *collector) AllErrors() []Error { return slices.Clone(c.errs) }

func (c *collector) GlobalErrors() []Error {
	return c.filter(func(e Error) bool { return e.IsGlobal() })
}

// FieldErrors returns the errors of field. A trailing "*" matches every
// field with that prefix. An empty field outside a nested path matches all
// field errors.
func (c *collector) FieldErrors(field string) []Error {
	if field == "" && c.nestedPath == "" {
		return c.filter(func(e Error) bool { return !e.IsGlobal() })
	}
	fixed := c.fixedField(field)
	return c.filter(func(e Error) bool { return !e.IsGlobal() && matchesField(fixed, e.Field) })
}

func (c *collector) FieldError(field string) (Error, bool) {
	errs := c.FieldErrors(field)
	if len(errs) == 0 {
		return Error{}, false
	}
	return errs[0], true
}

func (c *collector) ValidationErrors() []Error {
	return c.filter(func(e Error) bool { return !e.BindingFailure })
}

func (c *collector) BindingFailures() []Error {
	return c.filter(func(e Error) bool { return e.BindingFailure })
}

func (c *collector) model(target any, self Result) map[string]any {
	return map[string]any{
		c.objectName:                  target,
		ModelKeyPrefix + c.objectName: self,
	}
}

func (c *collector) filter(keep func(Error) bool) []Error {
	var out []Error
	for _, e := range c.errs {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func matchesField(pattern, field string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(field, prefix)
	}
	return pattern == field
}

func canonicalPath(path string) string {
	if path != "" && !strings.HasSuffix(path, ".") {
		path += "."
	}
	return path
}

// RecordBindingFailure registers a type conversion failure for field, which
// is qualified by the current nested path.
func RecordBindingFailure(r Result, field string, rejected any, cause error) {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	fixed := field
	if np := r.NestedPath(); np != "" {
		fixed = np + field
	}
	r.AddError(Error{
		Object:         r.ObjectName(),
		Field:          fixed,
		Rejected:       rejected,
		BindingFailure: true,
		Codes:          r.ResolveMessageCodes(TypeMismatchCode, field),
		Arguments:      []any{field},
		DefaultMessage: msg,
	})
}
