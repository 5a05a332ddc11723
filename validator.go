package validlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/i18n"
	"github.com/dmitrymomot/validlite/pkg/logger"
	"github.com/dmitrymomot/validlite/pkg/message"
	"github.com/dmitrymomot/validlite/pkg/playground"
	"github.com/dmitrymomot/validlite/pkg/request"
	"github.com/dmitrymomot/validlite/pkg/result"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

// DefaultGroup selects struct tag validation of beans.
const DefaultGroup = playground.DefaultGroup

// Validator validates request inputs and turns the results into localized
// field errors.
type Validator struct {
	catalog *i18n.Catalog
	prefix  string
	locales *message.LocaleResolver
	codes   message.CodesResolver
	logger  *slog.Logger

	source    *message.Source
	rules     *rule.Engine
	composite *playground.Engine
	binder    *binding.Binder
}

// Option configures a Validator.
type Option func(*Validator)

// WithCatalog sets the message catalog. Without one every message is the
// fallback text of its rule.
func WithCatalog(c *i18n.Catalog) Option {
	return func(v *Validator) {
		v.catalog = c
	}
}

// WithMessagePrefix sets the catalog namespace of validation codes.
func WithMessagePrefix(prefix string) Option {
	return func(v *Validator) {
		v.prefix = prefix
	}
}

// WithLocaleResolver sets how the message language of a request is chosen.
func WithLocaleResolver(r *message.LocaleResolver) Option {
	return func(v *Validator) {
		if r != nil {
			v.locales = r
		}
	}
}

// WithCodesResolver sets the message code expansion used by error sinks.
func WithCodesResolver(r message.CodesResolver) Option {
	return func(v *Validator) {
		if r != nil {
			v.codes = r
		}
	}
}

// WithLogger sets the logger passed to the composite engine and message source.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		prefix:  message.DefaultKeyPrefix,
		locales: message.NewLocaleResolver("", i18n.DefaultLanguage),
		codes:   message.DefaultCodesResolver{},
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.source = message.NewSource(v.catalog,
		message.WithKeyPrefix(v.prefix),
		message.WithLogger(v.logger),
	)
	v.rules = rule.NewEngine(rule.WithLocalizer(v.source))
	v.composite = playground.New(
		playground.WithLocalizer(v.source),
		playground.WithLogger(v.logger),
	)
	v.binder = binding.NewBinder(binding.WithMessagePrefix(v.prefix))
	return v
}

// NewFromConfig creates a Validator from cfg, loading the catalog from
// cfg.TranslationsDir when set. opts are applied after the configuration.
func NewFromConfig(ctx context.Context, cfg Config, log *slog.Logger, opts ...Option) (*Validator, error) {
	if log == nil {
		log = logger.Discard()
	}
	base := []Option{
		WithMessagePrefix(cfg.MessagePrefix),
		WithLocaleResolver(message.NewLocaleResolver(
			cfg.DefaultLanguage, cfg.FallbackLanguage, cfg.SupportedLanguages...,
		)),
		WithLogger(log),
	}

	if cfg.TranslationsDir != "" {
		catalog, err := i18n.NewCatalog(ctx,
			i18n.NewFSAdapter(os.DirFS(cfg.TranslationsDir), "."),
			i18n.WithDefaultLanguage(cfg.FallbackLanguage),
			i18n.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("load translations from %s: %w", cfg.TranslationsDir, err)
		}
		log.InfoContext(ctx, "translations loaded",
			logger.Component("validator"),
			slog.Any("languages", catalog.Languages()))
		base = append(base, WithCatalog(catalog))
	}
	return New(append(base, opts...)...), nil
}

// Composite returns the struct tag engine, for registering custom tags and
// struct level rules.
func (v *Validator) Composite() *playground.Engine { return v.composite }

// Binder returns the binder registering violations into error sinks.
func (v *Validator) Binder() *binding.Binder { return v.binder }

// Locale returns the message language for ctx.
func (v *Validator) Locale(ctx context.Context) string {
	return v.locales.Resolve(ctx)
}

// Validate validates target with its struct tags and group rules. Without
// groups, or with playground.DefaultGroup, struct tags apply.
func (v *Validator) Validate(ctx context.Context, target any, groups ...string) (*result.ValidatedResult, error) {
	return v.composite.ValidateComposite(ctx, target, v.Locale(ctx), groups...)
}

// ValidateParameter validates one plain value against rules.
func (v *Validator) ValidateParameter(ctx context.Context, name string, value any, rules []rule.Rule, groups ...string) *result.ValidatedResult {
	return v.rules.ValidateParameter(name, value, rules, v.Locale(ctx), groups...)
}

// BindErrors registers every violation of vr into sink.
func (v *Validator) BindErrors(vr *result.ValidatedResult, sink binding.Sink) error {
	return v.binder.Bind(vr, sink)
}

// Precompile warms the rule metadata cache of targets.
func (v *Validator) Precompile(ctx context.Context, targets ...any) error {
	return v.composite.Precompile(ctx, targets...)
}

// NewRequest creates a request validation context using this validator's
// binder and message codes.
func (v *Validator) NewRequest(opts ...request.Option) *request.Context {
	return request.New(v.requestOptions(opts)...)
}

// Middleware attaches a request validation context to every request.
func (v *Validator) Middleware(opts ...request.Option) func(next http.Handler) http.Handler {
	return request.Middleware(v.requestOptions(opts)...)
}

func (v *Validator) requestOptions(opts []request.Option) []request.Option {
	return append([]request.Option{
		request.WithBinder(v.binder),
		request.WithSinkOptions(binding.WithCodesResolver(v.codes)),
	}, opts...)
}

// Message returns the localized text of e: the first catalog entry among its
// codes, or its default message.
func (v *Validator) Message(locale string, e binding.Error) string {
	return v.source.Message(locale, e.Codes, e.Arguments, e.DefaultMessage)
}

// Errors renders every error of r as localized messages keyed by field path.
// Object errors are keyed by the object name.
func (v *Validator) Errors(locale string, r binding.Errors) ValidationError {
	out := NewValidationError()
	if r == nil {
		return out
	}
	for _, e := range r.AllErrors() {
		key := e.Field
		if e.IsGlobal() {
			key = e.Object
		}
		out.Add(key, v.Message(locale, e))
	}
	return out
}

// MergeIntoRequest adds the result of the named parameter to rc.
func MergeIntoRequest(rc *request.Context, name string, vr *result.ValidatedResult) error {
	if rc == nil {
		return request.ErrNoContext
	}
	return rc.Merge(name, vr)
}

// OnLastParameterProcessed reports that parameter index of count was
// processed. After the last one it returns a *request.ValidationFailure when
// unclaimed validation errors were collected.
func OnLastParameterProcessed(rc *request.Context, index, count int, errorsParam bool) error {
	if rc == nil {
		return request.ErrNoContext
	}
	return rc.Finalize(index, count, errorsParam)
}

// AsValidationFailure extracts a *request.ValidationFailure from err.
func AsValidationFailure(err error) (*request.ValidationFailure, bool) {
	var vf *request.ValidationFailure
	if errors.As(err, &vf) {
		return vf, true
	}
	return nil, false
}
