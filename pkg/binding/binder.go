package binding

import (
	"fmt"

	"github.com/dmitrymomot/validlite/pkg/message"
	"github.com/dmitrymomot/validlite/pkg/result"
)

// Binder registers the violations of a validation result into a Sink.
type Binder struct {
	prefix string
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithMessagePrefix sets the prefix of every registered base code.
func WithMessagePrefix(prefix string) BinderOption {
	return func(b *Binder) {
		b.prefix = prefix
	}
}

// NewBinder creates a binder using message.DefaultKeyPrefix.
func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{prefix: message.DefaultKeyPrefix}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Prefix returns the message code prefix.
func (b *Binder) Prefix() string { return b.prefix }

// Bind registers one error per violated fragment of vr, walking nested
// results depth first. Fields that already carry a binding failure are
// skipped. The first sink error stops the walk.
func (b *Binder) Bind(vr *result.ValidatedResult, sink Sink) error {
	for _, el := range vr.Rejected() {
		field := el.Field()
		if sink.HasBindingFailure(field) {
			continue
		}
		if el.IsNested() {
			if err := sink.PushNestedPath(field); err != nil {
				return err
			}
			if err := b.Bind(el.Nested(), sink); err != nil {
				return err
			}
			if err := sink.PopNestedPath(); err != nil {
				return err
			}
			continue
		}
		for _, f := range el.Fragments() {
			if err := sink.Register(field, el.Value(), f, b.prefix); err != nil {
				return fmt.Errorf("bind %q: %w", sink.NestedPath()+field, err)
			}
		}
	}
	return nil
}
