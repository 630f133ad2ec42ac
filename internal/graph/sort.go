package graph

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// TopSort orders the graph with Kahn's algorithm and caches the result.
//
// Excluded vertices are traversed but not emitted. When the graph contains a
// cycle a *CycleError is returned and the cached order is cleared.
func (g *Graph[K]) TopSort() ([]K, error) {
	g.sorted = nil

	inDegree := make([]int, len(g.slots))
	queue := linkedlistqueue.New()
	for i, vx := range g.slots {
		if vx == nil {
			continue
		}
		inDegree[i] = vx.in.Size()
		if inDegree[i] == 0 {
			queue.Enqueue(i)
		}
	}

	if queue.Empty() && len(g.index) != 0 {
		// No roots at all: every vertex sits on or behind a cycle.
		return nil, g.cycleError(nil)
	}

	visited := make([]bool, len(g.slots))
	count := 0
	order := make([]K, 0, len(g.index))
	for !queue.Empty() {
		next, _ := queue.Dequeue()
		idx := next.(int)
		vx := g.slots[idx]
		visited[idx] = true
		count++

		if inDegree[idx] == 0 && !vx.excluded {
			order = append(order, vx.value)
		}

		for _, succ := range slotsOf(vx.out) {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue.Enqueue(succ)
			}
		}
	}

	if count != len(g.index) {
		return nil, g.cycleError(visited)
	}

	g.sorted = order
	g.stale = false
	return g.Sorted(), nil
}

// Sorted returns a copy of the order cached by the last successful TopSort.
// It never recomputes; callers must TopSort again after mutating the graph.
func (g *Graph[K]) Sorted() []K {
	out := make([]K, len(g.sorted))
	copy(out, g.sorted)
	return out
}

func (g *Graph[K]) cycleError(visited []bool) *CycleError {
	var remaining []string
	for i, vx := range g.slots {
		if vx == nil || (visited != nil && visited[i]) {
			continue
		}
		remaining = append(remaining, vx.name)
	}
	return &CycleError{Remaining: remaining}
}
