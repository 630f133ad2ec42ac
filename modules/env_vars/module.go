package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the env_vars handler.
type Input struct {
	// Names limits the copy to these variables. Empty copies everything.
	Names []string `phase:"names,optional"`
	// Prefix is prepended to every frame variable name.
	Prefix string `phase:"prefix,optional"`
}

// environ is swapped in tests.
var environ = os.Environ

// OnRunEnvVars copies environment variables into the frame variables.
// Requested variables that are unset are stored as empty strings.
func OnRunEnvVars(ctx context.Context, f *frame.Frame, input *Input) error {
	envMap := make(map[string]string)
	for _, e := range environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}

	if len(input.Names) == 0 {
		for k, v := range envMap {
			f.Set(input.Prefix+k, cty.StringVal(v))
		}
		return nil
	}
	for _, name := range input.Names {
		f.Set(input.Prefix+name, cty.StringVal(envMap[name]))
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("env_vars", registry.Handler(OnRunEnvVars))
}
