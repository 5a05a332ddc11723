package playground

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/validlite/pkg/logger"
	"github.com/dmitrymomot/validlite/pkg/result"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

// DefaultGroup selects struct tag validation.
const DefaultGroup = rule.DefaultGroup

// fallbackFormat is the message used when no localized text exists.
// Example: "'city': value '' does not meet the requirements for the 'required' validation"
const fallbackFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// GroupRules is implemented by types that declare rules per validation
// group. The returned map is group name to json field name to validator tag.
type GroupRules interface {
	GroupRules() map[string]map[string]string
}

// Engine validates composite values.
type Engine struct {
	v         *validator.Validate
	localizer rule.Localizer
	logger    *slog.Logger
	types     sync.Map // reflect.Type -> *typeInfo
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocalizer sets the localizer for fragment messages.
func WithLocalizer(l rule.Localizer) Option {
	return func(e *Engine) {
		if l != nil {
			e.localizer = l
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine with required struct validation enabled.
func New(opts ...Option) *Engine {
	e := &Engine{
		v:      validator.New(validator.WithRequiredStructEnabled()),
		logger: logger.Discard(),
	}
	e.v.RegisterTagNameFunc(jsonName)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterValidation registers a custom validation tag.
func (e *Engine) RegisterValidation(tag string, fn validator.Func, callEvenIfNull ...bool) error {
	return e.v.RegisterValidation(tag, fn, callEvenIfNull...)
}

// RegisterStructRule registers a struct-level rule for the given types.
// Reporting an error with an empty field name yields an object-level element.
func (e *Engine) RegisterStructRule(fn validator.StructLevelFunc, types ...any) {
	e.v.RegisterStructValidation(fn, types...)
}

// Var validates a single value against a validator tag and returns its
// fragments.
func (e *Engine) Var(value any, tag, field, locale string) ([]result.Fragment, error) {
	err := e.v.Var(value, tag)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	fragments := make([]result.Fragment, 0, len(verrs))
	for _, fe := range verrs {
		fragments = append(fragments, e.fragment(field, fe, locale))
	}
	return fragments, nil
}

// ValidateComposite validates target and returns its result tree. Without
// groups, or when DefaultGroup is requested, struct tags are validated;
// other groups run the rules declared through GroupRules.
func (e *Engine) ValidateComposite(ctx context.Context, target any, locale string, groups ...string) (*result.ValidatedResult, error) {
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrInvalidTarget
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrInvalidTarget
	}
	info := e.typeInfo(rv.Type(), target)

	tree := newNode()
	if len(groups) == 0 || slices.Contains(groups, DefaultGroup) {
		if err := e.v.StructCtx(ctx, target); err != nil {
			if err := e.collect(tree, err, locale); err != nil {
				return nil, err
			}
		}
	}
	for _, group := range groups {
		rules, ok := info.groups[group]
		if !ok || group == DefaultGroup {
			continue
		}
		for _, f := range info.fields {
			tag, ok := rules[f.name]
			if !ok || tag == "" {
				continue
			}
			value := rv.FieldByIndex(f.index)
			if !value.CanInterface() {
				continue
			}
			if err := e.v.VarCtx(ctx, value.Interface(), tag); err != nil {
				if err := e.collectVar(tree, f.name, err, locale); err != nil {
					return nil, err
				}
			}
		}
	}
	return tree.build(), nil
}

// Precompile caches validation metadata of the given struct types.
func (e *Engine) Precompile(ctx context.Context, targets ...any) error {
	start := time.Now()
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrPrecompile, err)
		}
		t := reflect.TypeOf(target)
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			return fmt.Errorf("%w: %T", ErrPrecompile, target)
		}
		e.typeInfo(t, target)
		// Validating a zero value makes the validator parse and cache the
		// struct tags of t.
		_ = e.v.StructCtx(ctx, reflect.New(t).Interface())
	}
	e.logger.InfoContext(ctx, "validation metadata precompiled",
		logger.Component("playground"),
		slog.Int("types", len(targets)),
		logger.Duration(time.Since(start)))
	return nil
}

func (e *Engine) collect(tree *node, err error, locale string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		// The first namespace segment is the struct type name.
		path := strings.Split(fe.Namespace(), ".")[1:]
		field := ""
		if len(path) > 0 {
			field = path[len(path)-1]
		}
		tree.insert(path, fe.Value(), e.fragment(field, fe, locale))
	}
	return nil
}

func (e *Engine) collectVar(tree *node, field string, err error, locale string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		tree.insert([]string{field}, fe.Value(), e.fragment(field, fe, locale))
	}
	return nil
}

func (e *Engine) fragment(field string, fe validator.FieldError, locale string) result.Fragment {
	args := []any{field}
	if p := fe.Param(); p != "" {
		args = append(args, p)
	}
	msg := fmt.Sprintf(fallbackFormat, field, fe.Value(), fe.Tag())
	if e.localizer != nil {
		msg = e.localizer.Localize(locale, fe.Tag(), args, msg)
	}
	return result.NewFragment(fe.Tag(), fe.Tag(), msg, args...)
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
