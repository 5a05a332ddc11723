package message

import (
	"context"

	"github.com/dmitrymomot/validlite/pkg/i18n"
)

// LocaleResolver picks the language of validation messages for a request.
//
// A configured default language always wins over the request locale. Without
// one, the locale stored by i18n.Middleware is matched against the supported
// languages, and Fallback is used when nothing matches.
type LocaleResolver struct {
	Default  string
	Fallback string
	matcher  *i18n.Matcher
}

// NewLocaleResolver creates a resolver. Empty supported means any
// well-formed request locale is accepted.
func NewLocaleResolver(defaultLang, fallback string, supported ...string) *LocaleResolver {
	if fallback == "" {
		fallback = i18n.DefaultLanguage
	}
	return &LocaleResolver{
		Default:  i18n.Normalize(defaultLang),
		Fallback: fallback,
		matcher:  i18n.NewMatcher(supported...),
	}
}

// Resolve returns the message language for ctx.
func (r *LocaleResolver) Resolve(ctx context.Context) string {
	if r == nil {
		return i18n.GetLocale(ctx)
	}
	if r.Default != "" {
		return r.Default
	}
	requested, ok := i18n.LocaleFromContext(ctx)
	if !ok {
		return r.Fallback
	}
	if lang, ok := r.matcher.Match(requested); ok {
		return lang
	}
	return r.Fallback
}
