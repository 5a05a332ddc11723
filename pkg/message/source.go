package message

import (
	"log/slog"

	"github.com/dmitrymomot/validlite/pkg/i18n"
	"github.com/dmitrymomot/validlite/pkg/logger"
)

// DefaultKeyPrefix namespaces validation messages in the catalog.
const DefaultKeyPrefix = "validator"

// Source resolves localized messages from a catalog.
type Source struct {
	catalog *i18n.Catalog
	prefix  string
	logger  *slog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithKeyPrefix sets the namespace used by Localize. An empty prefix looks
// codes up as is.
func WithKeyPrefix(prefix string) SourceOption {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger reporting unresolved codes.
func WithLogger(logger *slog.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSource creates a message source. A nil catalog yields a source that
// always answers with fallback messages.
func NewSource(catalog *i18n.Catalog, opts ...SourceOption) *Source {
	s := &Source{
		catalog: catalog,
		prefix:  DefaultKeyPrefix,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Localize resolves a rule code: "<prefix>.<code>" first, then the bare code.
// It implements rule.Localizer.
func (s *Source) Localize(locale, code string, args []any, fallback string) string {
	codes := []string{code}
	if s.prefix != "" {
		codes = []string{s.prefix + CodeSeparator + code, code}
	}
	return s.Message(locale, codes, args, fallback)
}

// Message returns the first catalog entry among codes, formatted with args.
// fallback is returned when no code resolves.
func (s *Source) Message(locale string, codes []string, args []any, fallback string) string {
	if s == nil || s.catalog == nil {
		return fallback
	}
	for _, code := range codes {
		if tmpl, ok := s.catalog.Lookup(locale, code); ok {
			return i18n.Format(tmpl, args...)
		}
	}
	s.logger.Debug("message code not resolved",
		slog.String("locale", locale),
		slog.Any("codes", codes))
	return fallback
}
