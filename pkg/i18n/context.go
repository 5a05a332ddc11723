package i18n

import (
	"context"
	"net/http"
	"strings"
)

type localeContextKey struct{}

// SetLocale stores the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale stored in the context, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// LocaleFromContext returns the stored locale and whether one was set.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale, locale != ""
}

// LangExtractor extracts a language code from a request.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds configuration for DefaultLangExtractor.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie checked for a language preference.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter checked for a language.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts extracted languages to the given set.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks the cookie, the query parameter and the
// Accept-Language header, in that order. It returns an empty string when
// no source yields a supported language.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{CookieName: "lang", QueryParamName: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}
	matcher := NewMatcher(cfg.SupportedLangs...)

	explicit := func(lang string) string {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			return ""
		}
		if m, ok := matcher.Match(lang); ok {
			return m
		}
		return ""
	}

	return func(r *http.Request) string {
		if cfg.CookieName != "" {
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if lang := explicit(cookie.Value); lang != "" {
					return lang
				}
			}
		}
		if cfg.QueryParamName != "" {
			if lang := explicit(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
				return lang
			}
		}
		if header := r.Header.Get("Accept-Language"); header != "" {
			return ParseAcceptLanguage(header, matcher.Supported(), "")
		}
		return ""
	}
}

// Middleware stores the extracted language in the request context.
// A nil extractor uses DefaultLangExtractor. Requests without a detectable
// language get DefaultLanguage.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = DefaultLanguage
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
