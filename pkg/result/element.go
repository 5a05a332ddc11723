package result

import (
	"fmt"
	"slices"
	"strings"
)

// ElementResult is the validation outcome of one field.
// It holds either fragments (the field failed rules directly) or a nested
// result (the field is a composite validated on its own), never both.
type ElementResult struct {
	field     string
	value     any
	fragments []Fragment
	nested    *ValidatedResult
}

// NewElement creates an element for a plain field with its violations in
// rule-declaration order. It panics if field is a dotted path.
func NewElement(field string, value any, fragments ...Fragment) *ElementResult {
	mustBeUnqualified(field)
	return &ElementResult{
		field:     field,
		value:     value,
		fragments: slices.Clone(fragments),
	}
}

// NewNestedElement creates an element for a composite field.
// It panics if field is a dotted path.
func NewNestedElement(field string, value any, nested *ValidatedResult) *ElementResult {
	mustBeUnqualified(field)
	return &ElementResult{
		field:  field,
		value:  value,
		nested: nested,
	}
}

func mustBeUnqualified(field string) {
	if strings.Contains(field, ".") {
		panic(fmt.Sprintf("result: element field %q must not be a dotted path", field))
	}
}

// Field returns the unqualified field name.
func (e *ElementResult) Field() string { return e.field }

// Value returns the rejected value.
func (e *ElementResult) Value() any { return e.value }

// Fragments returns a copy of the field's violations.
func (e *ElementResult) Fragments() []Fragment { return slices.Clone(e.fragments) }

// Nested returns the nested result, or nil for a plain field.
func (e *ElementResult) Nested() *ValidatedResult { return e.nested }

// IsNested reports whether the element wraps a nested result.
func (e *ElementResult) IsNested() bool { return e.nested != nil }

// Passed reports whether the field has no violations at any depth.
func (e *ElementResult) Passed() bool {
	if e == nil {
		return true
	}
	return len(e.fragments) == 0 && e.nested.Passed()
}

// FragmentCount returns the number of violations reachable from the element.
func (e *ElementResult) FragmentCount() int {
	if e.nested != nil {
		return e.nested.FragmentCount()
	}
	return len(e.fragments)
}
