// Command unrestsim runs the civil unrest simulation headless and prints a
// summary when the run ends.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/talgya/unrest/internal/config"
	"github.com/talgya/unrest/internal/engine"
	"github.com/talgya/unrest/internal/history"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("UNREST_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Configuration from file, then environment overrides.
	cfgPath := envOrDefault("UNREST_CONFIG", "")

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			slog.Error("failed to load config", "path", cfgPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
		slog.Info("config loaded", "path", cfgPath)
	}
	cfg.Seed = int64(envIntOrDefault("UNREST_SEED", int(cfg.Seed)))
	if ticks := envIntOrDefault("UNREST_TICKS", -1); ticks >= 0 {
		cfg.MaxTicks = uint64(ticks)
	}

	// ── History ───────────────────────────────────────────────────────
	store, err := history.Open()
	if err != nil {
		slog.Error("failed to open history", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// ── World ─────────────────────────────────────────────────────────
	w, err := engine.NewWorld(cfg, engine.WithRecorder(store))
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}
	eng := engine.NewEngine(w)

	// ── Start ─────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
		cancel()
	}()

	fmt.Printf("\nRun %s: %d citizens and %d cops on a %dx%d grid.\n",
		w.RunID, w.CitizenCount(), w.CopCount(), cfg.GridSize, cfg.GridSize)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	if err := eng.Run(ctx); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	printSummary(context.Background(), w, store)
}

func printSummary(ctx context.Context, w *engine.World, store *history.Store) {
	snap := w.Snapshot()
	fmt.Printf("\nStopped after %d ticks (running=%v).\n", snap.Tick, snap.Running)
	fmt.Printf("Legitimacy %.2f, citizens %d (calm %d, revolt %d, jail %d), cops %d.\n",
		snap.Legitimacy, w.CitizenCount(), snap.Stats.Calm, snap.Stats.Revolt, snap.Stats.Jail, w.CopCount())
	fmt.Printf("Killed: %d citizens, %d cops.\n", snap.Killed.Citizens, snap.Killed.Cops)

	revolt, err := store.Series(ctx, w.RunID, "revolt")
	if err != nil {
		slog.Warn("revolt series unavailable", "error", err)
		return
	}
	peak := history.Point{}
	for _, p := range revolt {
		if p.Value > peak.Value {
			peak = p
		}
	}
	fmt.Printf("Peak revolt: %.0f at tick %d.\n", peak.Value, peak.Tick)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
