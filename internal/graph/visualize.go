package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualize writes one line per vertex in insertion order, listing the
// display names of its direct successors:
//
//	update -> [render, audio]
//
// The output is meant for humans and is not a stable format.
func (g *Graph[K]) Visualize(w io.Writer) error {
	for _, vx := range g.slots {
		if vx == nil {
			continue
		}
		succ := slotsOf(vx.out)
		names := make([]string, 0, len(succ))
		for _, idx := range succ {
			names = append(names, g.slots[idx].name)
		}
		if _, err := fmt.Fprintf(w, "%s -> [%s]\n", vx.name, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}
