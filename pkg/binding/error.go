package binding

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/validlite/pkg/result"
)

// TypeMismatchCode is the base code of binding failures.
const TypeMismatchCode = "typeMismatch"

// Error is a single registered validation or binding error.
// Field is empty for object-level errors.
type Error struct {
	Object         string
	Field          string
	Rejected       any
	BindingFailure bool
	Codes          []string
	Arguments      []any
	DefaultMessage string

	// Source is the rule violation the error was built from, if any.
	Source *result.Fragment
}

// IsGlobal reports whether the error is not attributed to a field.
func (e Error) IsGlobal() bool { return e.Field == "" }

// Code returns the least specific message code.
func (e Error) Code() string {
	if len(e.Codes) == 0 {
		return ""
	}
	return e.Codes[len(e.Codes)-1]
}

func (e Error) String() string {
	var b strings.Builder
	if e.IsGlobal() {
		fmt.Fprintf(&b, "Error in object '%s': ", e.Object)
	} else {
		fmt.Fprintf(&b, "Field error in object '%s' on field '%s': rejected value [%v]; ", e.Object, e.Field, e.Rejected)
	}
	fmt.Fprintf(&b, "codes [%s]; arguments [%s]; default message [%s]",
		strings.Join(e.Codes, ","), joinArgs(e.Arguments), e.DefaultMessage)
	return b.String()
}

func joinArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ",")
}
