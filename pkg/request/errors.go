package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/validlite/pkg/binding"
)

var (
	ErrFinalized    = errors.New("request validation context is finalized")
	ErrInvalidIndex = errors.New("parameter index out of range")
	ErrNoContext    = errors.New("no request validation context")
)

// ValidationFailure is the aggregated failure raised when a request ends
// with unclaimed validation errors.
type ValidationFailure struct {
	Errors binding.Result
}

func (e *ValidationFailure) Error() string {
	if e == nil || e.Errors == nil {
		return "Validation failed for argument with 0 error(s): "
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Validation failed for argument with %d error(s): ", e.Errors.ErrorCount())
	for _, fe := range e.Errors.AllErrors() {
		b.WriteString("[")
		b.WriteString(fe.String())
		b.WriteString("] ")
	}
	return b.String()
}

// IsValidationFailure reports whether err carries a *ValidationFailure.
func IsValidationFailure(err error) bool {
	var vf *ValidationFailure
	return errors.As(err, &vf)
}
