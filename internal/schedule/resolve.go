package schedule

import (
	"github.com/vk/phasegrid/internal/ident"
)

// resolved splits references into tags and runnables.
type resolved[C any] struct {
	tags      []*Tag[C]
	runnables []*Runnable[C]
}

// subject is the runnable or tag a constraint applies to.
type subject[C any] struct {
	runnable *Runnable[C]
	tag      *Tag[C]
}

// source is where outgoing edges start: the tag's after sentinel, so the
// whole group happens before the target.
func (s subject[C]) source() *Runnable[C] {
	if s.tag != nil {
		return s.tag.after
	}
	return s.runnable
}

// sink is where incoming edges end.
func (s subject[C]) sink() *Runnable[C] {
	if s.tag != nil {
		return s.tag.before
	}
	return s.runnable
}

// resolve looks identifiers up in the tag map first, then the runnable map.
func (s *Schedule[C]) resolve(refs []Ref) (resolved[C], error) {
	var out resolved[C]
	for _, ref := range refs {
		if ref.runnable != nil {
			r, ok := ref.runnable.(*Runnable[C])
			if !ok {
				return out, invalidf("reference %s is a %T, not a runnable of this schedule", ref, ref.runnable)
			}
			out.runnables = append(out.runnables, r)
			continue
		}
		if ref.id.IsZero() {
			return out, invalidf("empty reference")
		}
		if t, ok := s.reg.tags[ref.id]; ok {
			out.tags = append(out.tags, t)
			continue
		}
		if r, ok := s.reg.runnables[ref.id]; ok {
			out.runnables = append(out.runnables, r)
			continue
		}
		return out, &UnresolvedReferenceError{ID: ref.id}
	}
	return out, nil
}

func (s *Schedule[C]) applyBefore(subj subject[C], refs []Ref) error {
	res, err := s.resolve(refs)
	if err != nil {
		return err
	}
	from := subj.source()
	for _, t := range res.tags {
		s.graph.AddEdge(from, t.before)
	}
	for _, r := range res.runnables {
		s.graph.AddEdge(from, r)
	}
	return nil
}

func (s *Schedule[C]) applyAfter(subj subject[C], refs []Ref) error {
	res, err := s.resolve(refs)
	if err != nil {
		return err
	}
	to := subj.sink()
	for _, t := range res.tags {
		s.graph.AddEdge(t.after, to)
	}
	for _, r := range res.runnables {
		s.graph.AddEdge(r, to)
	}
	return nil
}

func (s *Schedule[C]) applyTags(r *Runnable[C], ids []ident.ID) error {
	for _, id := range ids {
		t, ok := s.reg.tags[id]
		if !ok {
			return &UnresolvedReferenceError{ID: id}
		}
		s.graph.AddEdge(t.before, r)
		s.graph.AddEdge(r, t.after)
	}
	return nil
}
