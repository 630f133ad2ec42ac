package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is returned (wrapped in a *CycleError) when TopSort cannot order
// the graph.
var ErrCycle = errors.New("graph contains a cycle")

// CycleError reports the vertices that could not be ordered. Remaining holds
// their display names in insertion order.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Remaining) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: check dependencies of [%s]", ErrCycle.Error(), strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
