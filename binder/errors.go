package binder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidTarget        = errors.New("binding target must be a non-nil pointer to struct")
	ErrUnsupportedType      = errors.New("unsupported field type")
)

// FieldError is a value that could not be converted to its field type.
type FieldError struct {
	// Field is the json name of the struct field.
	Field string
	// Param is the request parameter the value came from.
	Param string
	Value []string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// Rejected returns the raw value in the shape it was received.
func (e FieldError) Rejected() any {
	if len(e.Value) == 1 {
		return e.Value[0]
	}
	return e.Value
}

// FieldErrors lists every conversion failure of one binding pass.
type FieldErrors struct {
	Kind   error
	Errors []FieldError
}

func (e *FieldErrors) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Error()
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *FieldErrors) Unwrap() error { return e.Kind }

// AsFieldErrors extracts conversion failures from err.
func AsFieldErrors(err error) (*FieldErrors, bool) {
	var fes *FieldErrors
	if errors.As(err, &fes) && len(fes.Errors) > 0 {
		return fes, true
	}
	return nil, false
}
