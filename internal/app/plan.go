package app

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Plan writes the run order, one system per line.
func (a *App) Plan(w io.Writer) error {
	index := color.New(color.FgCyan, color.Bold)
	name := color.New(color.FgGreen)
	if a.config.NoColor {
		index.DisableColor()
		name.DisableColor()
	}

	order := a.schedule.Names()
	if _, err := fmt.Fprintf(w, "%d systems\n", len(order)); err != nil {
		return err
	}
	for i, n := range order {
		if _, err := fmt.Fprintf(w, "%s %s\n", index.Sprintf("%3d.", i+1), name.Sprint(n)); err != nil {
			return err
		}
	}
	return nil
}

// Graph writes every vertex with its direct successors, tag sentinels
// included. With reduce, edges implied by longer paths are dropped first.
func (a *App) Graph(w io.Writer, reduce bool) error {
	if reduce {
		removed := a.schedule.Reduce()
		a.logger.Debug("Transitive reduction applied.", "edges_removed", removed)
	}
	return a.schedule.Visualize(w)
}
