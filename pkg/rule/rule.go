package rule

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultGroup is the group of rules declared without groups.
const DefaultGroup = "default"

// Rule is a single value-level validation rule.
type Rule struct {
	ID      string
	Code    string
	Check   func(value any) bool
	Args    []any
	Message string
	Groups  []string
}

// In returns a copy of the rule restricted to the given groups.
func (r Rule) In(groups ...string) Rule {
	r.Groups = slices.Clone(groups)
	return r
}

// WithMessage returns a copy of the rule with a custom fallback message.
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}

// WithCode returns a copy of the rule with a custom message code.
func (r Rule) WithCode(code string) Rule {
	r.Code = code
	return r
}

func (r Rule) code() string {
	if r.Code != "" {
		return r.Code
	}
	return r.ID
}

// applies reports whether the rule runs for the requested groups.
func (r Rule) applies(groups []string) bool {
	if len(groups) == 0 {
		groups = []string{DefaultGroup}
	}
	own := r.Groups
	if len(own) == 0 {
		own = []string{DefaultGroup}
	}
	for _, g := range own {
		if slices.Contains(groups, g) {
			return true
		}
	}
	return false
}

// Format substitutes positional placeholders ("{0}", "{1}", ...) in tmpl.
// Placeholders without a matching argument are kept as-is.
func Format(tmpl string, args []any) string {
	if len(args) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, fmt.Sprintf("{%d}", i), fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
