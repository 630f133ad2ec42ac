package sleep

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the sleep handler.
type Input struct {
	Duration string `phase:"duration"`
}

// OnRunSleep blocks for the given duration, or until ctx is done.
func OnRunSleep(ctx context.Context, f *frame.Frame, input *Input) error {
	d, err := time.ParseDuration(input.Duration)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", input.Duration, err)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("sleep", registry.Handler(OnRunSleep))
}
