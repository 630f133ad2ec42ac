package schedule

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/graph"
	"github.com/vk/phasegrid/internal/ident"
)

// State is the lifecycle state of a Schedule.
type State int

const (
	StateEmpty State = iota
	StateDirty
	StateBuilt
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDirty:
		return "dirty"
	case StateBuilt:
		return "built"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Schedule orders runnables that take a context value of type C.
type Schedule[C any] struct {
	graph *graph.Graph[*Runnable[C]]
	reg   registry[C]
	state State
}

// New creates an empty schedule.
func New[C any]() *Schedule[C] {
	return &Schedule[C]{
		graph: graph.New[*Runnable[C]](),
		reg:   newRegistry[C](),
	}
}

// State returns the current lifecycle state.
func (s *Schedule[C]) State() State { return s.state }

// Has reports whether r is part of the schedule.
func (s *Schedule[C]) Has(r *Runnable[C]) bool { return s.graph.Exists(r) }

// HasTag reports whether a tag is registered under id.
func (s *Schedule[C]) HasTag(id ident.ID) bool {
	_, ok := s.reg.tags[id]
	return ok
}

// Runnable returns the runnable bound to id.
func (s *Schedule[C]) Runnable(id ident.ID) (*Runnable[C], bool) {
	r, ok := s.reg.runnables[id]
	return r, ok
}

// Tag returns the tag registered under id.
func (s *Schedule[C]) Tag(id ident.ID) (*Tag[C], bool) {
	t, ok := s.reg.tags[id]
	return t, ok
}

// Add registers r and applies its constraints. Adding a runnable that is
// already scheduled fails without touching the schedule. A constraint that
// fails to resolve leaves r in place with the constraints applied so far.
func (s *Schedule[C]) Add(r *Runnable[C], opts ...Option) error {
	if r == nil {
		return invalidf("nil runnable")
	}
	if s.graph.Exists(r) {
		return &DuplicateError{Kind: "runnable", Name: r.name}
	}
	return s.add(r, collect(opts))
}

// AddAll adds every runnable with the same constraints. WithID is rejected
// since one identifier cannot name several runnables.
func (s *Schedule[C]) AddAll(rs []*Runnable[C], opts ...Option) error {
	o := collect(opts)
	if !o.id.IsZero() {
		return invalidf("WithID cannot be used with AddAll")
	}

	seen := make(map[*Runnable[C]]struct{}, len(rs))
	for _, r := range rs {
		if r == nil {
			return invalidf("nil runnable")
		}
		if _, dup := seen[r]; dup || s.graph.Exists(r) {
			return &DuplicateError{Kind: "runnable", Name: r.name}
		}
		seen[r] = struct{}{}
	}

	for _, r := range rs {
		if err := s.add(r, o); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schedule[C]) add(r *Runnable[C], o options) error {
	s.graph.AddVertex(r, graph.WithName(r.name))
	s.state = StateDirty

	if !o.id.IsZero() {
		if err := s.reg.bindRunnable(o.id, r); err != nil {
			return err
		}
		if o.id.Kind() == ident.KindNamed {
			s.graph.Name(r, o.id.Name())
		}
	}

	subj := subject[C]{runnable: r}
	if err := s.applyBefore(subj, o.before); err != nil {
		return fmt.Errorf("add %s: before: %w", r.name, err)
	}
	if err := s.applyAfter(subj, o.after); err != nil {
		return fmt.Errorf("add %s: after: %w", r.name, err)
	}
	if err := s.applyTags(r, o.tags); err != nil {
		return fmt.Errorf("add %s: tags: %w", r.name, err)
	}
	return nil
}

// CreateTag registers a tag under id. Only Before and After are accepted as
// options; they order the whole group.
func (s *Schedule[C]) CreateTag(id ident.ID, opts ...Option) (*Tag[C], error) {
	if id.IsZero() {
		return nil, invalidf("tag id cannot be empty")
	}
	o := collect(opts)
	if !o.id.IsZero() || len(o.tags) > 0 {
		return nil, invalidf("tags accept only Before and After")
	}

	t := newTag[C](id)
	if err := s.reg.bindTag(t); err != nil {
		return nil, err
	}
	s.graph.AddVertex(t.before, graph.WithName(t.before.name), graph.WithExcludeFromSort(true))
	s.graph.AddVertex(t.after, graph.WithName(t.after.name), graph.WithExcludeFromSort(true))
	s.graph.AddEdge(t.before, t.after)
	s.state = StateDirty

	subj := subject[C]{tag: t}
	if err := s.applyBefore(subj, o.before); err != nil {
		return t, fmt.Errorf("create tag %s: before: %w", id, err)
	}
	if err := s.applyAfter(subj, o.after); err != nil {
		return t, fmt.Errorf("create tag %s: after: %w", id, err)
	}
	return t, nil
}

// RemoveTag removes the tag registered under id. Ordering that went through
// the tag is kept. Unknown ids are ignored.
func (s *Schedule[C]) RemoveTag(id ident.ID) {
	t, ok := s.reg.unbindTag(id)
	if !ok {
		return
	}
	s.graph.RemoveVertex(t.before)
	s.graph.RemoveVertex(t.after)
	s.state = StateDirty
}

// Remove takes r out of the schedule. Ordering that went through r is kept.
// An identifier bound to r stays reserved.
func (s *Schedule[C]) Remove(r *Runnable[C]) {
	if !s.graph.Exists(r) {
		return
	}
	s.graph.RemoveVertex(r)
	s.state = StateDirty
}

// Build recomputes the run order. On failure the previous order is discarded
// and Run executes nothing until the next successful Build.
func (s *Schedule[C]) Build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	order, err := s.graph.TopSort()
	if err != nil {
		s.state = StateDirty
		return fmt.Errorf("build schedule: %w", err)
	}
	s.state = StateBuilt
	logger.Debug("Schedule built.", "vertices", s.graph.Len(), "runnables", len(order))
	return nil
}

// Run calls every runnable of the last built order, one after the other, with
// c. The first runnable error stops the run and is returned as a *RunError.
// A cancelled ctx stops the run before the next runnable.
func (s *Schedule[C]) Run(ctx context.Context, c C) error {
	logger := ctxlog.FromContext(ctx)

	order := s.graph.Sorted()
	for i, r := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := s.vertexName(r)
		logger.Debug("Running.", "runnable", name, "index", i)
		if err := r.call(ctxlog.With(ctx, "runnable", name), c); err != nil {
			return &RunError{Runnable: name, Index: i, Err: err}
		}
	}
	return nil
}

// Sorted returns the last built order.
func (s *Schedule[C]) Sorted() []*Runnable[C] { return s.graph.Sorted() }

// Names returns the display names of the last built order.
func (s *Schedule[C]) Names() []string {
	order := s.graph.Sorted()
	names := make([]string, len(order))
	for i, r := range order {
		names[i] = s.vertexName(r)
	}
	return names
}

// Len returns the number of scheduled runnables, tag sentinels excluded.
func (s *Schedule[C]) Len() int {
	return s.graph.Len() - 2*len(s.reg.tags)
}

// Reduce drops edges implied by longer paths and returns how many were
// removed. The run order is not affected until the next Build.
func (s *Schedule[C]) Reduce() int {
	n := s.graph.TransitiveReduction()
	if n > 0 {
		s.state = StateDirty
	}
	return n
}

// Visualize writes each vertex with its direct successors.
func (s *Schedule[C]) Visualize(w io.Writer) error {
	return s.graph.Visualize(w)
}

func (s *Schedule[C]) vertexName(r *Runnable[C]) string {
	if info, ok := s.graph.Vertex(r); ok {
		return info.Name
	}
	return r.name
}
