package validlite

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/validlite/binder"
	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/logger"
	"github.com/dmitrymomot/validlite/pkg/request"
	"github.com/dmitrymomot/validlite/pkg/result"
)

// Args holds the resolved arguments of an operation in declaration order.
type Args struct {
	names  []string
	values []any
}

// Len returns the number of resolved arguments.
func (a Args) Len() int { return len(a.values) }

// Index returns the argument at position i, or nil when out of range.
func (a Args) Index(i int) any {
	if i < 0 || i >= len(a.values) {
		return nil
	}
	return a.values[i]
}

// Get returns the named argument.
func (a Args) Get(name string) (any, bool) {
	for i, n := range a.names {
		if n == name {
			return a.values[i], true
		}
	}
	return nil, false
}

func (a *Args) add(name string, value any) {
	a.names = append(a.names, name)
	a.values = append(a.values, value)
}

// Arg returns the named argument as T. A nil argument, such as a missing
// optional value, yields the zero T.
func Arg[T any](args Args, name string) (T, error) {
	var zero T
	v, ok := args.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownArgument, name)
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T", ErrArgumentType, name, v)
	}
	return t, nil
}

// Resolver binds and validates the parameters of operations.
type Resolver struct {
	v         *Validator
	pathParam func(r *http.Request, name string) string
	logger    *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPathExtractor sets how path parameters are read. The default is
// chi.URLParam.
func WithPathExtractor(fn func(r *http.Request, name string) string) ResolverOption {
	return func(res *Resolver) {
		if fn != nil {
			res.pathParam = fn
		}
	}
}

// WithResolverLogger sets the logger for resolution traces and raised failures.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(res *Resolver) {
		if l != nil {
			res.logger = l
		}
	}
}

// NewResolver creates a resolver validating with v.
func NewResolver(v *Validator, opts ...ResolverOption) *Resolver {
	if v == nil {
		v = New()
	}
	res := &Resolver{
		v:         v,
		pathParam: chi.URLParam,
		logger:    v.logger,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Validator returns the validator used by the resolver.
func (res *Resolver) Validator() *Validator { return res.v }

// Resolve resolves every parameter of op in order. The validation context
// attached by Validator.Middleware is used, or a new one is created. After
// the last parameter it returns a *request.ValidationFailure when validation
// errors or binding failures were collected and no errors parameter claimed
// them.
func (res *Resolver) Resolve(r *http.Request, op Operation) (Args, error) {
	if err := op.Validate(); err != nil {
		return Args{}, err
	}
	ctx := r.Context()
	rc, ok := request.FromContext(ctx)
	if !ok {
		rc = res.v.NewRequest(request.WithSuppressed(request.IsForwarded(ctx)))
	}

	var args Args
	count := len(op.Params)
	for i, p := range op.Params {
		value, err := res.ResolveArgument(r, rc, p)
		if err != nil {
			return Args{}, fmt.Errorf("resolve %s.%s: %w", op.Name, p.Name, err)
		}
		args.add(p.Name, value)

		res.logger.DebugContext(ctx, "parameter resolved",
			logger.Operation(op.Name),
			logger.Parameter(p.Name),
			slog.String("kind", p.Kind.String()),
			slog.Bool("suppressed", rc.Suppressed()))

		sink, claimed := rc.CachedSink(), rc.Claimed()
		errorsParam := p.Kind == KindErrors
		if err := OnLastParameterProcessed(rc, i, count, errorsParam); err != nil {
			res.logFailure(r, op, err)
			return Args{}, err
		}
		if i == count-1 && !errorsParam && !claimed && sink != nil && len(sink.BindingFailures()) > 0 {
			err := &request.ValidationFailure{Errors: sink}
			res.logFailure(r, op, err)
			return Args{}, err
		}
	}
	return args, nil
}

// ResolveArgument resolves one parameter against rc. Suppressed contexts,
// and parameters rc already covers, return the bound value without
// validation.
func (res *Resolver) ResolveArgument(r *http.Request, rc *request.Context, p Param) (any, error) {
	switch p.Kind {
	case KindErrors:
		sink, err := rc.Claim()
		if err != nil {
			return nil, err
		}
		return binding.Result(sink), nil
	case KindValue:
		return res.resolveValue(r, rc, p)
	case KindBean:
		return res.resolveBean(r, rc, p)
	default:
		return nil, fmt.Errorf("%w: parameter %q has unknown kind %s", ErrInvalidOperation, p.Name, p.Kind)
	}
}

func (res *Resolver) resolveValue(r *http.Request, rc *request.Context, p Param) (any, error) {
	raw, present, err := res.raw(r, p)
	if err != nil {
		return nil, err
	}
	var value any
	var convErr error
	if present {
		value, convErr = binder.Convert(raw, p.Type)
	}
	if rc.Suppressed() || rc.Covered(p.Name) {
		return value, nil
	}

	sink, err := rc.Sink()
	if err != nil {
		return nil, err
	}
	sink.PutParameter(p.Name, value, p.Type)
	if convErr != nil {
		binding.RecordBindingFailure(sink, p.Name, rejected(raw), convErr)
	}

	vr := res.v.ValidateParameter(r.Context(), p.Name, value, p.Rules, p.Groups...)
	if err := MergeIntoRequest(rc, p.Name, vr); err != nil {
		return nil, err
	}
	return value, nil
}

func (res *Resolver) resolveBean(r *http.Request, rc *request.Context, p Param) (any, error) {
	target := p.newValue()
	var failures []binder.FieldError
	for _, bind := range p.binders {
		if err := bind(r, target); err != nil {
			fes, ok := binder.AsFieldErrors(err)
			if !ok {
				return nil, err
			}
			failures = append(failures, fes.Errors...)
		}
	}
	if rc.Suppressed() || rc.Covered(p.Name) {
		return target, nil
	}

	sink, err := rc.Sink()
	if err != nil {
		return nil, err
	}
	sink.PutParameter(p.Name, target, p.Type)
	prefix := ""
	if p.Nested {
		prefix = p.Name + "."
	}
	for _, fe := range failures {
		binding.RecordBindingFailure(sink, prefix+fe.Field, fe.Rejected(), fe.Err)
	}

	vr, err := res.v.Validate(r.Context(), target, p.Groups...)
	if err != nil {
		return nil, err
	}
	if p.Nested {
		vr = result.New(result.NewNestedElement(p.Name, target, vr))
	}
	if err := MergeIntoRequest(rc, p.Name, vr); err != nil {
		return nil, err
	}
	return target, nil
}

// raw returns the request values of a plain parameter.
func (res *Resolver) raw(r *http.Request, p Param) ([]string, bool, error) {
	switch p.Source {
	case FromPath:
		v := res.pathParam(r, p.Name)
		return []string{v}, v != "", nil
	case FromHeader:
		vs := r.Header.Values(p.Name)
		return vs, len(vs) > 0, nil
	case FromForm:
		if err := r.ParseForm(); err != nil {
			return nil, false, fmt.Errorf("%w: %v", binder.ErrInvalidForm, err)
		}
		vs, ok := r.PostForm[p.Name]
		return vs, ok, nil
	default:
		vs, ok := r.URL.Query()[p.Name]
		return vs, ok, nil
	}
}

func (res *Resolver) logFailure(r *http.Request, op Operation, err error) {
	attrs := []slog.Attr{logger.Operation(op.Name), logger.Error(err)}
	if vf, ok := AsValidationFailure(err); ok && vf.Errors != nil {
		attrs = append(attrs, logger.ErrorCount(vf.Errors.ErrorCount()))
	}
	res.logger.LogAttrs(r.Context(), slog.LevelWarn, "request validation failed", attrs...)
}

func rejected(raw []string) any {
	if len(raw) == 1 {
		return raw[0]
	}
	return raw
}
