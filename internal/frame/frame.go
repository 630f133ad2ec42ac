// Package frame defines the context value handed to every system of a
// file-declared pipeline.
package frame

import (
	"io"
	"sort"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Frame describes one pass over the schedule. Vars persists across frames;
// the other fields are refreshed by the host loop before every pass.
type Frame struct {
	// Index counts frames from zero.
	Index uint64
	// Delta is the wall time since the previous frame started, zero for the
	// first frame.
	Delta time.Duration
	// Time is when the frame started.
	Time time.Time
	// Out receives user-facing output of systems.
	Out io.Writer
	// Vars is shared state between systems and frames.
	Vars map[string]cty.Value
}

// New creates the first frame.
func New(out io.Writer) *Frame {
	return &Frame{
		Out:  out,
		Vars: make(map[string]cty.Value),
	}
}

// Advance moves f to the next frame starting at now. The first call keeps
// Index at zero.
func (f *Frame) Advance(now time.Time) {
	if !f.Time.IsZero() {
		f.Index++
		f.Delta = now.Sub(f.Time)
	}
	f.Time = now
}

// Set stores a variable.
func (f *Frame) Set(name string, val cty.Value) {
	if f.Vars == nil {
		f.Vars = make(map[string]cty.Value)
	}
	f.Vars[name] = val
}

// Get returns a variable, or a null value when it is unset.
func (f *Frame) Get(name string) (cty.Value, bool) {
	v, ok := f.Vars[name]
	if !ok {
		return cty.NullVal(cty.DynamicPseudoType), false
	}
	return v, true
}

// VarNames returns the variable names in sorted order.
func (f *Frame) VarNames() []string {
	names := make([]string, 0, len(f.Vars))
	for k := range f.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
