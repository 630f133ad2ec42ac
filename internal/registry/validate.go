package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/phasegrid/internal/bind"
	"github.com/vk/phasegrid/internal/config"
	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Validate performs a strict parity check between the pipeline and Go code.
// Every system must name a registered handler, every argument must match a
// field of the handler's input struct and convert to its type, and every
// required field must be given.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, sys := range model.Systems {
		handler, ok := r.handlers[sys.Handler]
		if !ok {
			errs = append(errs, fmt.Sprintf("system '%s': unknown handler '%s' (registered: %s)", sys.Name, sys.Handler, strings.Join(r.Names(), ", ")))
			continue
		}

		if handler.InputType == nil {
			if len(sys.Arguments) > 0 {
				errs = append(errs, fmt.Sprintf("system '%s': arguments given, but handler '%s' takes no input", sys.Name, sys.Handler))
			}
			continue
		}

		fields := bind.Fields(handler.InputType)

		argNames := make([]string, 0, len(sys.Arguments))
		for name := range sys.Arguments {
			argNames = append(argNames, name)
		}
		sort.Strings(argNames)

		for _, name := range argNames {
			field, ok := fields[name]
			if !ok {
				errs = append(errs, fmt.Sprintf("system '%s': handler '%s' has no input '%s'", sys.Name, sys.Handler, name))
				continue
			}
			if bind.IsDynamic(field.Type) {
				continue
			}

			fieldType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
			if err != nil {
				logger.Warn("Input field has no static cty type, skipping type check.", "system", sys.Name, "input", name, "error", err)
				continue
			}
			if _, err := convert.Convert(sys.Arguments[name], fieldType); err != nil {
				errs = append(errs, fmt.Sprintf("system '%s', input '%s': type mismatch. Handler requires '%s' but got '%s'",
					sys.Name, name, fieldType.FriendlyName(), sys.Arguments[name].Type().FriendlyName()))
			}
		}

		for name, field := range fields {
			if field.Optional {
				continue
			}
			if _, ok := sys.Arguments[name]; !ok {
				errs = append(errs, fmt.Sprintf("system '%s': missing required input '%s'", sys.Name, name))
			}
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
