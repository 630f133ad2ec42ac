package graph

// AddEdge adds the edge from -> to, meaning from is ordered before to.
// Missing endpoints and existing edges make this a no-op.
func (g *Graph[K]) AddEdge(from, to K) {
	fi, _, ok := g.lookup(from)
	if !ok {
		return
	}
	ti, _, ok := g.lookup(to)
	if !ok {
		return
	}
	g.link(fi, ti)
}

// RemoveEdge removes the edge from -> to if it exists.
func (g *Graph[K]) RemoveEdge(from, to K) {
	fi, _, ok := g.lookup(from)
	if !ok {
		return
	}
	ti, _, ok := g.lookup(to)
	if !ok {
		return
	}
	g.unlink(fi, ti)
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph[K]) HasEdge(from, to K) bool {
	_, fv, ok := g.lookup(from)
	if !ok {
		return false
	}
	ti, _, ok := g.lookup(to)
	if !ok {
		return false
	}
	return fv.out.Contains(ti)
}

// Successors returns the direct successors of v in edge insertion order.
func (g *Graph[K]) Successors(v K) []K {
	_, vx, ok := g.lookup(v)
	if !ok {
		return nil
	}
	return g.values(slotsOf(vx.out))
}

// Predecessors returns the direct predecessors of v in edge insertion order.
func (g *Graph[K]) Predecessors(v K) []K {
	_, vx, ok := g.lookup(v)
	if !ok {
		return nil
	}
	return g.values(slotsOf(vx.in))
}

func (g *Graph[K]) link(from, to int) {
	fv, tv := g.slots[from], g.slots[to]
	if fv.out.Contains(to) && tv.in.Contains(from) {
		return
	}
	fv.out.Add(to)
	tv.in.Add(from)
	g.stale = true
}

func (g *Graph[K]) unlink(from, to int) {
	fv, tv := g.slots[from], g.slots[to]
	if !fv.out.Contains(to) && !tv.in.Contains(from) {
		return
	}
	fv.out.Remove(to)
	tv.in.Remove(from)
	g.stale = true
}

func (g *Graph[K]) values(slots []int) []K {
	out := make([]K, 0, len(slots))
	for _, idx := range slots {
		out = append(out, g.slots[idx].value)
	}
	return out
}
