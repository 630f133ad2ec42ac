package graph

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// TransitiveReduction removes every edge u -> v for which v is also reachable
// from u through another path. It makes a single pass over the vertices in
// insertion order and returns the number of edges removed.
//
// The pass is best-effort: it is meant for acyclic graphs and does not iterate
// to a fixed point.
func (g *Graph[K]) TransitiveReduction() int {
	removed := 0
	for u, vx := range g.slots {
		if vx == nil {
			continue
		}

		var redundant []int
		for _, v := range slotsOf(vx.out) {
			if g.reachableWithout(u, v) {
				redundant = append(redundant, v)
			}
		}

		for _, v := range redundant {
			g.unlink(u, v)
			removed++
		}
	}
	return removed
}

// reachableWithout reports whether to can be reached from from without using
// the direct edge from -> to. Breadth-first over out-edges.
func (g *Graph[K]) reachableWithout(from, to int) bool {
	visited := map[int]bool{from: true}
	queue := linkedlistqueue.New()
	for _, n := range slotsOf(g.slots[from].out) {
		if n == to || visited[n] {
			continue
		}
		visited[n] = true
		queue.Enqueue(n)
	}

	for !queue.Empty() {
		next, _ := queue.Dequeue()
		cur := next.(int)
		if cur == to {
			return true
		}
		for _, n := range slotsOf(g.slots[cur].out) {
			if !visited[n] {
				visited[n] = true
				queue.Enqueue(n)
			}
		}
	}
	return false
}
