package result

import (
	"fmt"
	"slices"
)

// Fragment is a single rule violation of one field.
type Fragment struct {
	id      string
	code    string
	args    []any
	message string
}

// NewFragment creates a rule violation record.
// id names the rule that failed (e.g. "NotNull"), code is used for message lookup
// and defaults to id when empty, message is the fallback text.
func NewFragment(id, code, message string, args ...any) Fragment {
	if code == "" {
		code = id
	}
	return Fragment{
		id:      id,
		code:    code,
		args:    slices.Clone(args),
		message: message,
	}
}

// ID returns the identifier of the rule that produced the fragment.
func (f Fragment) ID() string { return f.id }

// Code returns the message lookup code.
func (f Fragment) Code() string { return f.code }

// Arguments returns a copy of the positional message arguments.
func (f Fragment) Arguments() []any { return slices.Clone(f.args) }

// Message returns the fallback message.
func (f Fragment) Message() string { return f.message }

func (f Fragment) String() string {
	return fmt.Sprintf("%s(%s): %s", f.id, f.code, f.message)
}
