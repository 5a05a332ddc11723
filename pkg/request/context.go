package request

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/result"
)

// State is the lifecycle state of a Context.
type State int

const (
	Accumulating State = iota
	Finalized
)

func (s State) String() string {
	if s == Finalized {
		return "finalized"
	}
	return "accumulating"
}

// Context accumulates validation results of one request.
type Context struct {
	id         uuid.UUID
	objectName string
	binder     *binding.Binder
	sinkOpts   []binding.Option

	merged           *result.ValidatedResult
	sink             *binding.ParameterResult
	alreadyValidated bool
	suppressed       bool
	claimed          bool
	covered          map[string]struct{}
	state            State
}

// Option configures a Context.
type Option func(*Context)

// WithSuppressed marks the request as an internal re-dispatch: no parameter
// is validated and nothing is raised.
func WithSuppressed(suppressed bool) Option {
	return func(c *Context) {
		c.suppressed = suppressed
	}
}

// WithBinder sets the binder used to register merged results.
func WithBinder(b *binding.Binder) Option {
	return func(c *Context) {
		if b != nil {
			c.binder = b
		}
	}
}

// WithObjectName sets the object name of the shared error sink.
func WithObjectName(name string) Option {
	return func(c *Context) {
		if name != "" {
			c.objectName = name
		}
	}
}

// WithSinkOptions passes options to the shared error sink.
func WithSinkOptions(opts ...binding.Option) Option {
	return func(c *Context) {
		c.sinkOpts = append(c.sinkOpts, opts...)
	}
}

// New creates an accumulating context.
func New(opts ...Option) *Context {
	c := &Context{
		id:         uuid.New(),
		objectName: binding.DefaultParameterObject,
		binder:     binding.NewBinder(),
		covered:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID identifies the context in logs.
func (c *Context) ID() uuid.UUID { return c.id }

// State returns the lifecycle state.
func (c *Context) State() State { return c.state }

// Suppressed reports whether validation is skipped for this request.
func (c *Context) Suppressed() bool { return c.suppressed }

// AlreadyValidated reports whether a parameter result was merged.
func (c *Context) AlreadyValidated() bool { return c.alreadyValidated }

// Claimed reports whether an error-sink parameter took the accumulated errors.
func (c *Context) Claimed() bool { return c.claimed }

// Merged returns the accumulated result, or nil before the first merge.
func (c *Context) Merged() *result.ValidatedResult { return c.merged }

// Covered reports whether the named parameter was validated in the current
// pass and no error-sink parameter claimed the errors since. A covered
// parameter is not validated again.
func (c *Context) Covered(name string) bool {
	_, ok := c.covered[name]
	return ok && c.alreadyValidated && !c.claimed
}

// Sink returns the shared error collection, creating it on first use.
func (c *Context) Sink() (*binding.ParameterResult, error) {
	if c.state == Finalized {
		return nil, ErrFinalized
	}
	if c.sink == nil {
		c.sink = binding.NewParameterResult(c.objectName, c.sinkOpts...)
	}
	return c.sink, nil
}

// CachedSink returns the shared error collection, or nil if none was created.
func (c *Context) CachedSink() *binding.ParameterResult { return c.sink }

// Merge adds the result of the named parameter to the accumulated result and
// binds its violations into the shared sink. The first merge seeds the
// accumulated result. Merging a covered parameter again, or merging into a
// suppressed context, leaves the accumulated result unchanged. A failed bind
// leaves both the sink and the accumulated result as they were.
func (c *Context) Merge(name string, r *result.ValidatedResult) error {
	if c.state == Finalized {
		return ErrFinalized
	}
	if c.suppressed || c.Covered(name) {
		return nil
	}
	if r == nil {
		r = result.New()
	}

	sink, err := c.Sink()
	if err != nil {
		return err
	}
	sp := sink.Savepoint()
	if err := c.binder.Bind(r, binding.Registering(sink)); err != nil {
		sink.Restore(sp)
		return fmt.Errorf("merge %q: %w", name, err)
	}
	sink.SetValidated(r)

	if !c.alreadyValidated || c.merged == nil {
		c.merged = result.New()
		c.alreadyValidated = true
	}
	c.merged.Merge(r)
	c.covered[name] = struct{}{}
	return nil
}

// Claim hands the accumulated errors to the caller. A request whose errors
// were claimed never raises a ValidationFailure.
func (c *Context) Claim() (*binding.ParameterResult, error) {
	sink, err := c.Sink()
	if err != nil {
		return nil, err
	}
	c.claimed = true
	return sink, nil
}

// Finalize notifies the context that parameter index of count was processed.
// On the last parameter it clears the request state and returns a
// *ValidationFailure when the shared sink holds validation errors nobody
// claimed. errorsParam marks the current parameter as an error-sink
// parameter, which never raises. Calls after finalization are no-ops.
func (c *Context) Finalize(index, count int, errorsParam bool) error {
	if c.state == Finalized {
		return nil
	}
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, count)
	}
	if index != count-1 {
		return nil
	}

	sink, claimed := c.sink, c.claimed
	c.state = Finalized
	c.merged = nil
	c.sink = nil
	c.alreadyValidated = false
	c.suppressed = false
	c.claimed = false
	clear(c.covered)

	if errorsParam || claimed || sink == nil {
		return nil
	}
	if len(sink.ValidationErrors()) > 0 {
		return &ValidationFailure{Errors: sink}
	}
	return nil
}
