package set_var

import (
	"context"
	"fmt"

	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the set_var handler.
type Input struct {
	Name  string    `phase:"name"`
	Value cty.Value `phase:"value,optional"`
	// Increment adds to the current numeric value instead of replacing it.
	Increment bool `phase:"increment,optional"`
}

// OnRunSetVar stores a value in the frame variables.
func OnRunSetVar(ctx context.Context, f *frame.Frame, input *Input) error {
	if !input.Increment {
		val := input.Value
		if val.IsNull() {
			val = cty.NullVal(cty.DynamicPseudoType)
		}
		f.Set(input.Name, val)
		return nil
	}

	step := input.Value
	if step.IsNull() {
		step = cty.NumberIntVal(1)
	}
	if !step.Type().Equals(cty.Number) {
		return fmt.Errorf("increment of %q needs a number, got %s", input.Name, step.Type().FriendlyName())
	}

	current, ok := f.Get(input.Name)
	if !ok {
		current = cty.NumberIntVal(0)
	}
	if !current.Type().Equals(cty.Number) {
		return fmt.Errorf("cannot increment %q: holds %s", input.Name, current.Type().FriendlyName())
	}
	f.Set(input.Name, current.Add(step))
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("set_var", registry.Handler(OnRunSetVar))
}
