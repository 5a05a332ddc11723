package result

import "slices"

// ValidatedResult is the outcome of validating one input.
// The zero value and nil are empty, passing results.
type ValidatedResult struct {
	elements []*ElementResult
}

// New creates a result from elements. Passing elements are dropped.
func New(elements ...*ElementResult) *ValidatedResult {
	r := &ValidatedResult{}
	for _, e := range elements {
		r.Add(e)
	}
	return r
}

// Add appends an element. Nil and passing elements are not stored.
func (r *ValidatedResult) Add(e *ElementResult) {
	if e == nil || e.Passed() {
		return
	}
	r.elements = append(r.elements, e)
}

// Merge appends the elements of other in their order.
// Elements with the same field name are all retained.
func (r *ValidatedResult) Merge(other *ValidatedResult) {
	if other == nil || other == r {
		return
	}
	r.elements = append(r.elements, other.elements...)
}

// Passed reports whether every element passed.
func (r *ValidatedResult) Passed() bool {
	if r == nil {
		return true
	}
	for _, e := range r.elements {
		if !e.Passed() {
			return false
		}
	}
	return true
}

// Elements returns the stored elements in insertion order.
func (r *ValidatedResult) Elements() []*ElementResult {
	if r == nil {
		return nil
	}
	return slices.Clone(r.elements)
}

// Len returns the number of stored elements.
func (r *ValidatedResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.elements)
}

// Rejected returns the elements that failed.
func (r *ValidatedResult) Rejected() []*ElementResult {
	if r == nil {
		return nil
	}
	var rejected []*ElementResult
	for _, e := range r.elements {
		if !e.Passed() {
			rejected = append(rejected, e)
		}
	}
	return rejected
}

// LastRejected returns the most recently added failed element, or nil.
func (r *ValidatedResult) LastRejected() *ElementResult {
	if r == nil {
		return nil
	}
	for i := len(r.elements) - 1; i >= 0; i-- {
		if !r.elements[i].Passed() {
			return r.elements[i]
		}
	}
	return nil
}

// Lookup returns the latest element stored for field, or nil.
func (r *ValidatedResult) Lookup(field string) *ElementResult {
	if r == nil {
		return nil
	}
	for i := len(r.elements) - 1; i >= 0; i-- {
		if r.elements[i].field == field {
			return r.elements[i]
		}
	}
	return nil
}

// Fields returns the distinct field names in first-seen order.
func (r *ValidatedResult) Fields() []string {
	if r == nil {
		return nil
	}
	var fields []string
	seen := make(map[string]bool, len(r.elements))
	for _, e := range r.elements {
		if !seen[e.field] {
			fields = append(fields, e.field)
			seen[e.field] = true
		}
	}
	return fields
}

// FragmentCount returns the number of violations at any nesting depth.
func (r *ValidatedResult) FragmentCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.elements {
		n += e.FragmentCount()
	}
	return n
}
