package builder

import (
	"context"
	"fmt"

	"github.com/vk/phasegrid/internal/config"
	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/ident"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/vk/phasegrid/internal/schedule"
)

// Schedule is the schedule type produced for file-declared pipelines.
type Schedule = schedule.Schedule[*frame.Frame]

// Build constructs and builds a schedule from model.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry, conv config.Converter) (*Schedule, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting schedule construction.", "tags", len(model.Tags), "systems", len(model.Systems))

	if err := model.Validate(); err != nil {
		return nil, err
	}
	if err := reg.Validate(ctx, model); err != nil {
		return nil, err
	}

	b := &builder{
		sched:    schedule.New[*frame.Frame](),
		declared: make(map[string]struct{}),
		pending:  make(map[string][]schedule.Option),
	}

	for _, t := range model.Tags {
		opts := b.constraints(t.Name, t.Before, t.After)
		if _, err := b.sched.CreateTag(ident.Named(t.Name), opts...); err != nil {
			return nil, fmt.Errorf("tag %q (%s): %w", t.Name, t.Source, err)
		}
	}
	logger.Debug("Build: Tags created.", "count", len(model.Tags))

	for _, sys := range model.Systems {
		r, err := newRunnable(ctx, sys, reg, conv)
		if err != nil {
			return nil, err
		}

		opts := []schedule.Option{schedule.WithID(ident.Named(sys.Name))}
		for _, tag := range sys.Tags {
			opts = append(opts, schedule.InTags(ident.Named(tag)))
		}
		opts = append(opts, b.constraints(sys.Name, sys.Before, sys.After)...)

		if err := b.sched.Add(r, opts...); err != nil {
			return nil, fmt.Errorf("system %q (%s): %w", sys.Name, sys.Source, err)
		}
	}
	logger.Debug("Build: Systems added.", "count", len(model.Systems))

	if err := b.sched.Build(ctx); err != nil {
		return nil, err
	}
	logger.Info("Schedule built.", "order", b.sched.Names())
	return b.sched, nil
}

type builder struct {
	sched    *Schedule
	declared map[string]struct{}
	// pending holds constraints on names not declared yet, already inverted.
	pending map[string][]schedule.Option
}

// constraints returns the options for the declaration of name and records
// inverted constraints for references that are not declared yet.
func (b *builder) constraints(name string, before, after []string) []schedule.Option {
	opts := b.pending[name]
	delete(b.pending, name)

	for _, ref := range before {
		if _, ok := b.declared[ref]; ok {
			opts = append(opts, schedule.Before(schedule.Name(ref)))
			continue
		}
		b.pending[ref] = append(b.pending[ref], schedule.After(schedule.Name(name)))
	}
	for _, ref := range after {
		if _, ok := b.declared[ref]; ok {
			opts = append(opts, schedule.After(schedule.Name(ref)))
			continue
		}
		b.pending[ref] = append(b.pending[ref], schedule.Before(schedule.Name(name)))
	}

	b.declared[name] = struct{}{}
	return opts
}

// newRunnable binds a system's arguments once and wraps its handler.
func newRunnable(ctx context.Context, sys *config.System, reg *registry.Registry, conv config.Converter) (*schedule.Runnable[*frame.Frame], error) {
	handler, ok := reg.Handler(sys.Handler)
	if !ok {
		return nil, fmt.Errorf("system %q: unknown handler %q", sys.Name, sys.Handler)
	}

	var input any
	if handler.NewInput != nil {
		input = handler.NewInput()
	}
	if input != nil {
		if err := conv.Decode(ctx, input, sys.Arguments); err != nil {
			return nil, fmt.Errorf("system %q: %w", sys.Name, err)
		}
	}

	return schedule.NewRunnable(sys.Name, func(ctx context.Context, f *frame.Frame) error {
		return handler.Fn(ctx, f, input)
	}), nil
}
