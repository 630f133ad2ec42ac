package schedule

import (
	"errors"
	"fmt"

	"github.com/vk/phasegrid/internal/graph"
	"github.com/vk/phasegrid/internal/ident"
)

var (
	ErrDuplicate           = errors.New("already exists")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrInvalidOption       = errors.New("invalid option")

	// ErrCycle is returned by Build when the constraints cannot be satisfied.
	ErrCycle = graph.ErrCycle
)

// DuplicateError reports a runnable, tag or identifier registered twice.
type DuplicateError struct {
	Kind string
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Kind, e.Name, ErrDuplicate)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// UnresolvedReferenceError reports an identifier bound to neither a tag nor a
// runnable.
type UnresolvedReferenceError struct {
	ID ident.ID
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: no tag or runnable with id %q", ErrUnresolvedReference, e.ID)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// RunError wraps the error returned by a runnable during Run.
type RunError struct {
	Runnable string
	Index    int
	Err      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("runnable %q (#%d) failed: %v", e.Runnable, e.Index, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}
