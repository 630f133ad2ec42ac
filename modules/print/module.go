package print

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the print handler.
type Input struct {
	Message string   `phase:"message"`
	Vars    []string `phase:"vars,optional"`
}

// OnRunPrint writes the message, followed by the requested frame variables,
// to the frame's output.
func OnRunPrint(ctx context.Context, f *frame.Frame, input *Input) error {
	ctxlog.FromContext(ctx).Debug("Printing message.", "frame", f.Index)

	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", f.Index, input.Message)
	for _, name := range input.Vars {
		val, ok := f.Get(name)
		if !ok {
			fmt.Fprintf(&b, " %s=(null)", name)
			continue
		}
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return fmt.Errorf("cannot format variable %q: %w", name, err)
		}
		fmt.Fprintf(&b, " %s=%s", name, raw)
	}
	b.WriteByte('\n')

	_, err := fmt.Fprint(f.Out, b.String())
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("print", registry.Handler(OnRunPrint))
}
