// Package engine provides the world model and the tick loop that drives it.
package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Engine drives a World forward tick by tick.
type Engine struct {
	World       *World
	Interval    time.Duration // Pause between ticks; 0 runs flat out
	MaxTicks    uint64        // 0 = no limit
	ReportEvery uint64        // 0 = no periodic report

	// OnTick runs after every completed tick.
	OnTick func(w *World)

	stopped atomic.Bool
}

// NewEngine creates an engine for w using the run-control settings of its config.
func NewEngine(w *World) *Engine {
	cfg := w.Config()
	return &Engine{
		World:       w,
		Interval:    cfg.TickInterval(),
		MaxTicks:    cfg.MaxTicks,
		ReportEvery: cfg.ReportEvery,
	}
}

// Run ticks until Stop is called, ctx is done, MaxTicks is reached, or the
// world stops running. A tick in progress always completes.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("simulation engine started", "tick", e.World.LastTick, "interval", e.Interval)

	for e.shouldContinue(ctx) {
		start := time.Now()

		if err := e.World.Tick(ctx); err != nil {
			slog.Error("tick failed", "tick", e.World.LastTick, "error", err)
			return err
		}
		if e.OnTick != nil {
			e.OnTick(e.World)
		}
		if e.ReportEvery > 0 && e.World.LastTick%e.ReportEvery == 0 {
			e.report()
		}

		if wait := e.Interval - time.Since(start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}

	slog.Info("simulation engine stopped",
		"tick", e.World.LastTick,
		"running", e.World.Running(),
	)
	return nil
}

// Stop halts the loop after the current tick. A Stop before Run makes Run
// return without ticking.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

func (e *Engine) shouldContinue(ctx context.Context) bool {
	if e.stopped.Load() || ctx.Err() != nil || !e.World.Running() {
		return false
	}
	return e.MaxTicks == 0 || e.World.LastTick < e.MaxTicks
}

func (e *Engine) report() {
	st := e.World.Stats
	slog.Info("periodic report",
		"tick", e.World.LastTick,
		"legitimacy", e.World.Legitimacy,
		"citizens", st.Citizens,
		"calm", st.Calm,
		"revolt", st.Revolt,
		"jail", st.Jail,
		"cops", st.Cops,
		"killed_citizens", e.World.Killed.Citizens,
		"killed_cops", e.World.Killed.Cops,
	)
}
