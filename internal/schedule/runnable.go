package schedule

import (
	"context"

	"github.com/vk/phasegrid/internal/ident"
)

// DefaultRunnableName is used when NewRunnable is given an empty name.
const DefaultRunnableName = "Runnable"

// Func is the body of a runnable. It blocks until the work is done.
type Func[C any] func(ctx context.Context, c C) error

// Runnable is a unit of work. Its identity is the pointer: two runnables
// built from the same Func are distinct.
type Runnable[C any] struct {
	name string
	fn   Func[C]
}

// NewRunnable wraps fn. A nil fn is a no-op.
func NewRunnable[C any](name string, fn Func[C]) *Runnable[C] {
	if name == "" {
		name = DefaultRunnableName
	}
	return &Runnable[C]{name: name, fn: fn}
}

// Name returns the display name given to NewRunnable.
func (r *Runnable[C]) Name() string { return r.name }

// Ref returns a reference to r for use in Before and After.
func (r *Runnable[C]) Ref() Ref { return Ref{runnable: r} }

func (r *Runnable[C]) call(ctx context.Context, c C) error {
	if r.fn == nil {
		return nil
	}
	return r.fn(ctx, c)
}

// Tag is a named group of runnables.
type Tag[C any] struct {
	id     ident.ID
	before *Runnable[C]
	after  *Runnable[C]
}

// ID returns the identifier the tag was created with.
func (t *Tag[C]) ID() ident.ID { return t.id }

func newTag[C any](id ident.ID) *Tag[C] {
	name := id.String()
	return &Tag[C]{
		id:     id,
		before: NewRunnable[C](name+"-before", nil),
		after:  NewRunnable[C](name+"-after", nil),
	}
}
