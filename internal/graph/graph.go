package graph

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// DefaultVertexName is the display name of vertices added without WithName.
const DefaultVertexName = "Vertex"

// compactThreshold is the minimum number of freed slots before the arena is
// considered for compaction.
const compactThreshold = 32

// vertex is a single arena slot. in and out hold slot indices (int).
type vertex[K comparable] struct {
	value    K
	name     string
	excluded bool
	in       *linkedhashset.Set
	out      *linkedhashset.Set
}

// Graph is a directed graph over payload values of type K.
//
// A Graph is not safe for concurrent use.
type Graph[K comparable] struct {
	index map[K]int
	slots []*vertex[K]
	freed int

	sorted []K
	stale  bool

	// last is the slot of the most recently added vertex, -1 if none.
	last int
}

// VertexInfo is a read-only snapshot of a vertex.
type VertexInfo struct {
	Name      string
	Excluded  bool
	InDegree  int
	OutDegree int
}

// VertexOption configures a vertex when it is first added.
type VertexOption func(*vertexOptions)

type vertexOptions struct {
	name     string
	excluded bool
}

// WithName sets the display name used by Visualize and in cycle reports.
func WithName(name string) VertexOption {
	return func(o *vertexOptions) { o.name = name }
}

// WithExcludeFromSort keeps the vertex out of the TopSort output while still
// ordering its neighbours around it.
func WithExcludeFromSort(exclude bool) VertexOption {
	return func(o *vertexOptions) { o.excluded = exclude }
}

// New creates an empty graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		index: make(map[K]int),
		last:  -1,
	}
}

// Len returns the number of vertices.
func (g *Graph[K]) Len() int {
	return len(g.index)
}

// Stale reports whether the graph was mutated after the last successful
// TopSort (or was never sorted).
func (g *Graph[K]) Stale() bool {
	return g.stale || g.sorted == nil
}

// Exists reports whether v has a vertex.
func (g *Graph[K]) Exists(v K) bool {
	_, ok := g.index[v]
	return ok
}

// Vertex returns a snapshot of the vertex for v.
func (g *Graph[K]) Vertex(v K) (VertexInfo, bool) {
	_, vx, ok := g.lookup(v)
	if !ok {
		return VertexInfo{}, false
	}
	return vx.info(), true
}

// Values returns every payload in insertion order.
func (g *Graph[K]) Values() []K {
	out := make([]K, 0, len(g.index))
	for _, vx := range g.slots {
		if vx != nil {
			out = append(out, vx.value)
		}
	}
	return out
}

// AddVertex adds a vertex for v. If v already has a vertex it is returned
// unchanged and the options are ignored.
func (g *Graph[K]) AddVertex(v K, opts ...VertexOption) VertexInfo {
	if _, vx, ok := g.lookup(v); ok {
		return vx.info()
	}

	o := vertexOptions{name: DefaultVertexName}
	for _, opt := range opts {
		opt(&o)
	}

	vx := &vertex[K]{
		value:    v,
		name:     o.name,
		excluded: o.excluded,
		in:       linkedhashset.New(),
		out:      linkedhashset.New(),
	}
	idx := len(g.slots)
	g.slots = append(g.slots, vx)
	g.index[v] = idx
	g.last = idx
	g.stale = true

	return vx.info()
}

// AddVertexToEnd adds v and an edge from the previously added vertex to it.
// When v already exists only the edge is added.
func (g *Graph[K]) AddVertexToEnd(v K, opts ...VertexOption) {
	prev := g.last
	g.AddVertex(v, opts...)

	idx := g.index[v]
	g.last = idx
	if prev < 0 || prev == idx {
		return
	}
	g.link(prev, idx)
}

// Name renames the vertex for v.
func (g *Graph[K]) Name(v K, name string) {
	if _, vx, ok := g.lookup(v); ok {
		vx.name = name
	}
}

// ExcludeFromSort toggles whether v is emitted by TopSort.
func (g *Graph[K]) ExcludeFromSort(v K, exclude bool) {
	if _, vx, ok := g.lookup(v); ok && vx.excluded != exclude {
		vx.excluded = exclude
		g.stale = true
	}
}

// RemoveVertex deletes the vertex for v. Every predecessor of v is linked to
// every successor of v so that orderings routed through v survive.
func (g *Graph[K]) RemoveVertex(v K) {
	idx, vx, ok := g.lookup(v)
	if !ok {
		return
	}

	ins := slotsOf(vx.in)
	outs := slotsOf(vx.out)

	for _, i := range ins {
		g.slots[i].out.Remove(idx)
	}
	for _, o := range outs {
		g.slots[o].in.Remove(idx)
	}

	for _, i := range ins {
		if i == idx {
			continue
		}
		for _, o := range outs {
			if o == idx {
				continue
			}
			g.link(i, o)
		}
	}

	g.slots[idx] = nil
	delete(g.index, v)
	g.freed++
	if g.last == idx {
		g.last = -1
	}
	g.stale = true

	g.maybeCompact()
}

func (g *Graph[K]) lookup(v K) (int, *vertex[K], bool) {
	idx, ok := g.index[v]
	if !ok {
		return -1, nil, false
	}
	return idx, g.slots[idx], true
}

// maybeCompact drops freed slots once they outnumber live vertices.
func (g *Graph[K]) maybeCompact() {
	if g.freed < compactThreshold || g.freed <= len(g.index) {
		return
	}

	remap := make([]int, len(g.slots))
	slots := make([]*vertex[K], 0, len(g.index))
	for i, vx := range g.slots {
		if vx == nil {
			remap[i] = -1
			continue
		}
		remap[i] = len(slots)
		g.index[vx.value] = len(slots)
		slots = append(slots, vx)
	}
	for _, vx := range slots {
		vx.in = remapSet(vx.in, remap)
		vx.out = remapSet(vx.out, remap)
	}
	if g.last >= 0 {
		g.last = remap[g.last]
	}

	g.slots = slots
	g.freed = 0
}

func (vx *vertex[K]) info() VertexInfo {
	return VertexInfo{
		Name:      vx.name,
		Excluded:  vx.excluded,
		InDegree:  vx.in.Size(),
		OutDegree: vx.out.Size(),
	}
}

func slotsOf(set *linkedhashset.Set) []int {
	values := set.Values()
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = v.(int)
	}
	return out
}

func remapSet(set *linkedhashset.Set, remap []int) *linkedhashset.Set {
	out := linkedhashset.New()
	for _, idx := range slotsOf(set) {
		out.Add(remap[idx])
	}
	return out
}
