package rule

import (
	"github.com/dmitrymomot/validlite/pkg/result"
)

// Localizer resolves a localized message for a rule code.
// It returns fallback when no catalog entry exists.
type Localizer interface {
	Localize(locale, code string, args []any, fallback string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocalizer sets the message localizer.
func WithLocalizer(l Localizer) Option {
	return func(e *Engine) {
		if l != nil {
			e.localizer = l
		}
	}
}

// Engine runs rules against values.
type Engine struct {
	localizer Localizer
}

// NewEngine creates a rule engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateField runs the applicable rules against value and returns one
// fragment per failed rule, in declaration order.
func (e *Engine) ValidateField(value any, rules []Rule, locale string, groups ...string) []result.Fragment {
	var fragments []result.Fragment
	for _, r := range rules {
		if r.Check == nil || !r.applies(groups) {
			continue
		}
		if r.Check(value) {
			continue
		}
		fragments = append(fragments, result.NewFragment(r.ID, r.code(), e.message(locale, r), r.Args...))
	}
	return fragments
}

// ValidateParameter validates a named value and returns its result.
// The result is empty when the value passed.
func (e *Engine) ValidateParameter(name string, value any, rules []Rule, locale string, groups ...string) *result.ValidatedResult {
	fragments := e.ValidateField(value, rules, locale, groups...)
	if len(fragments) == 0 {
		return result.New()
	}
	return result.New(result.NewElement(name, value, fragments...))
}

func (e *Engine) message(locale string, r Rule) string {
	fallback := Format(r.Message, r.Args)
	if e.localizer == nil {
		return fallback
	}
	return e.localizer.Localize(locale, r.code(), r.Args, fallback)
}
