package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/frame"
)

// Run is the host loop: it runs the schedule once per frame until the
// configured number of frames completed or ctx is cancelled. Cancellation is
// a clean shutdown and returns nil.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		srv := a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(srv)
	}

	ticks, stop, err := a.ticker()
	if err != nil {
		return err
	}
	defer stop()

	if len(a.schedule.Sorted()) == 0 {
		a.logger.Warn("Schedule is empty, frames will do nothing.")
	}
	a.logger.Info("🚀 Starting frame loop.", "frames", a.config.Frames, "interval", a.config.Interval, "cron", a.config.Cron)

	f := frame.New(a.outW)
	for a.config.Frames == 0 || a.Frames() < uint64(a.config.Frames) {
		var now time.Time
		select {
		case <-ctx.Done():
			a.logger.Info("🏁 Frame loop cancelled.", "frames", a.Frames())
			return nil
		case now = <-ticks:
		}

		f.Advance(now)
		if err := a.schedule.Run(ctxlog.With(ctx, "frame", f.Index), f); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				a.logger.Info("🏁 Frame loop cancelled mid-frame.", "frame", f.Index)
				return nil
			}
			return fmt.Errorf("frame %d failed: %w", f.Index, err)
		}
		a.frames.Add(1)
	}

	a.logger.Info("🏁 Frame loop finished.", "frames", a.Frames())
	return nil
}

// ticker returns a channel delivering frame start times according to the
// configuration, and a function releasing its resources.
func (a *App) ticker() (<-chan time.Time, func(), error) {
	switch {
	case a.config.Cron != "":
		ticks := make(chan time.Time, 1)
		c := cron.New(cron.WithParser(cronParser))
		if _, err := c.AddFunc(a.config.Cron, func() { offer(ticks, time.Now()) }); err != nil {
			return nil, nil, fmt.Errorf("invalid cron expression %q: %w", a.config.Cron, err)
		}
		c.Start()
		return ticks, func() { c.Stop() }, nil

	case a.config.Interval > 0:
		t := time.NewTicker(a.config.Interval)
		ticks := make(chan time.Time, 1)
		ticks <- time.Now()
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case now := <-t.C:
					offer(ticks, now)
				}
			}
		}()
		return ticks, func() { t.Stop(); close(done) }, nil

	default:
		ticks := make(chan time.Time)
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case ticks <- time.Now():
				}
			}
		}()
		return ticks, func() { close(done) }, nil
	}
}

// offer delivers now unless a tick is already waiting; slow frames drop ticks
// instead of queueing them.
func offer(ticks chan time.Time, now time.Time) {
	select {
	case ticks <- now:
	default:
	}
}
