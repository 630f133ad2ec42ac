package schedule

import (
	"github.com/vk/phasegrid/internal/ident"
)

// registry binds identifiers to runnables and tags. An identifier names at
// most one of either.
type registry[C any] struct {
	runnables map[ident.ID]*Runnable[C]
	tags      map[ident.ID]*Tag[C]
}

func newRegistry[C any]() registry[C] {
	return registry[C]{
		runnables: make(map[ident.ID]*Runnable[C]),
		tags:      make(map[ident.ID]*Tag[C]),
	}
}

func (r *registry[C]) bound(id ident.ID) bool {
	_, isRunnable := r.runnables[id]
	_, isTag := r.tags[id]
	return isRunnable || isTag
}

func (r *registry[C]) bindRunnable(id ident.ID, rn *Runnable[C]) error {
	if r.bound(id) {
		return &DuplicateError{Kind: "identifier", Name: id.String()}
	}
	r.runnables[id] = rn
	return nil
}

func (r *registry[C]) bindTag(t *Tag[C]) error {
	if _, ok := r.tags[t.id]; ok {
		return &DuplicateError{Kind: "tag", Name: t.id.String()}
	}
	if _, ok := r.runnables[t.id]; ok {
		return &DuplicateError{Kind: "identifier", Name: t.id.String()}
	}
	r.tags[t.id] = t
	return nil
}

func (r *registry[C]) unbindTag(id ident.ID) (*Tag[C], bool) {
	t, ok := r.tags[id]
	if ok {
		delete(r.tags, id)
	}
	return t, ok
}
