package schedule

import (
	"fmt"

	"github.com/vk/phasegrid/internal/ident"
)

// Ref points at a runnable, either directly or through an identifier bound by
// WithID or CreateTag.
type Ref struct {
	runnable any
	id       ident.ID
}

// Name refers to the tag or runnable registered as ident.Named(name).
func Name(name string) Ref { return Ref{id: ident.Named(name)} }

// ByID refers to the tag or runnable registered under id.
func ByID(id ident.ID) Ref { return Ref{id: id} }

func (r Ref) String() string {
	if r.runnable != nil {
		if n, ok := r.runnable.(interface{ Name() string }); ok {
			return n.Name()
		}
		return fmt.Sprintf("%v", r.runnable)
	}
	return r.id.String()
}

// Option declares a constraint for Add, AddAll or CreateTag.
type Option func(*options)

// options are applied in a fixed order: id, before, after, tags.
type options struct {
	id     ident.ID
	before []Ref
	after  []Ref
	tags   []ident.ID
}

// WithID binds the runnable to id so later constraints can refer to it.
func WithID(id ident.ID) Option {
	return func(o *options) { o.id = id }
}

// Before orders the subject before every referenced runnable or tag.
func Before(refs ...Ref) Option {
	return func(o *options) { o.before = append(o.before, refs...) }
}

// After orders the subject after every referenced runnable or tag.
func After(refs ...Ref) Option {
	return func(o *options) { o.after = append(o.after, refs...) }
}

// InTags places the runnable inside each tag.
func InTags(ids ...ident.ID) Option {
	return func(o *options) { o.tags = append(o.tags, ids...) }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
