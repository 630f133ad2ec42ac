package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/vk/phasegrid/internal/bind"
	"github.com/vk/phasegrid/internal/builder"
	"github.com/vk/phasegrid/internal/config"
	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/hcl"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/vk/phasegrid/internal/yamlcfg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
	schedule *builder.Schedule

	frames atomic.Uint64
}

// NewApp loads the pipeline, validates it against the registered modules and
// builds the schedule. Logs go to logW; systems write to outW. With no
// modules the core modules are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	conv := bind.NewConverter()
	loaders := []config.Loader{hcl.NewLoader(), yamlcfg.NewLoader(conv)}

	model := &config.Model{}
	for _, loader := range loaders {
		m, err := loader.Load(ctx, cfg.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load pipeline: %w", err)
		}
		model.Merge(m)
	}
	if model.Empty() {
		logger.Warn("No tags or systems found.", "paths", cfg.Paths)
	}
	logger.Debug("Pipeline loaded and translated into unified model.", "tags", len(model.Tags), "systems", len(model.Systems))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "handlers", reg.Names())

	sched, err := builder.Build(ctx, model, reg, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule: %w", err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		model:    model,
		schedule: sched,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Schedule returns the built schedule.
func (a *App) Schedule() *builder.Schedule {
	return a.schedule
}

// Frames returns how many frames completed.
func (a *App) Frames() uint64 {
	return a.frames.Load()
}
