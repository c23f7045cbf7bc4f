// Simulation ties the grid, the population and the bank together and runs
// them each tick.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/talgya/unrest/internal/agents"
	"github.com/talgya/unrest/internal/config"
	"github.com/talgya/unrest/internal/economy"
	"github.com/talgya/unrest/internal/entropy"
	"github.com/talgya/unrest/internal/params"
	"github.com/talgya/unrest/internal/world"
)

// ErrUnknownAgent is returned when a removal target is not in the roster.
var ErrUnknownAgent = errors.New("unknown agent")

// Recorder receives the statistics snapshot taken at the start of every tick.
type Recorder interface {
	Record(ctx context.Context, runID uuid.UUID, st Stats) error
}

// KillCounts tracks agents eliminated over a run.
type KillCounts struct {
	Citizens int `json:"citizens"`
	Cops     int `json:"cops"`
}

// World holds the complete simulation state.
//
// Agents step one at a time in insertion order against the live grid, so a
// later agent's neighborhood scan sees moves and arrests made earlier in the
// same tick. This is an approximation of simultaneous activation; with a
// fixed seed it is fully reproducible.
type World struct {
	RunID      uuid.UUID
	Grid       *world.Grid
	Bank       *economy.Bank
	Agents     []agents.Agent // Insertion order is stepping order
	Legitimacy float64
	LastTick   uint64
	Stats      Stats // Snapshot taken at the start of the last tick
	Killed     KillCounts

	cfg         config.Config
	rng         *entropy.Source
	spawner     *agents.Spawner
	index       map[agents.AgentID]agents.Agent
	pending     []agents.AgentID
	meanSavings float64
	running     bool
	recorder    Recorder
}

// Option customizes a World at construction.
type Option func(*World)

// WithRecorder attaches a statistics recorder.
func WithRecorder(r Recorder) Option {
	return func(w *World) { w.recorder = r }
}

// NewWorld builds an empty world from cfg and populates it.
func NewWorld(cfg config.Config, opts ...Option) (*World, error) {
	w, err := newEmptyWorld(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.populate(); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	slog.Info("world initialized",
		"run_id", w.RunID,
		"gridsize", cfg.GridSize,
		"citizens", w.CitizenCount(),
		"cops", w.CopCount(),
		"legitimacy", w.Legitimacy,
		"include_wealth", cfg.IncludeWealth,
	)
	return w, nil
}

// NewEmptyWorld builds a world with no agents; callers place them with Add.
func NewEmptyWorld(cfg config.Config, opts ...Option) (*World, error) {
	return newEmptyWorld(cfg, opts...)
}

func newEmptyWorld(cfg config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	for _, warn := range cfg.Warnings() {
		slog.Warn(warn, "cop_density", cfg.CopDensity, "citizen_density", cfg.CitizenDensity, "legitimacy", cfg.Legitimacy)
	}

	rng := entropy.New(cfg.Seed)
	runID, err := rng.RunID()
	if err != nil {
		return nil, err
	}

	spawn := agents.SpawnConfig{RichThreshold: cfg.RichThreshold, HardshipNoise: cfg.HardshipNoise}
	if cfg.HardshipNoise > 0 {
		spawn.Field = world.NewField(cfg.Seed)
	}

	w := &World{
		RunID:      runID,
		Grid:       world.NewGrid(cfg.GridSize, cfg.GridSize, cfg.Torus),
		Bank:       economy.NewBank(),
		Legitimacy: cfg.Legitimacy,
		cfg:        cfg,
		rng:        rng,
		spawner:    agents.NewSpawner(rng, spawn),
		index:      make(map[agents.AgentID]agents.Agent),
		running:    true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// populate fills every cell independently with one uniform draw: below the
// cop density a cop, below the combined density a citizen, else nothing.
func (w *World) populate() error {
	copCut := w.cfg.CopDensity
	citizenCut := w.cfg.CopDensity + w.cfg.CitizenDensity
	for _, c := range w.Grid.Coords() {
		u := w.rng.Float()
		var a agents.Agent
		switch {
		case u < copCut:
			a = w.spawner.SpawnCop()
		case u < citizenCut:
			a = w.spawner.SpawnCitizen(c)
		default:
			continue
		}
		if err := w.Add(a, c); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the parameters the world was built with.
func (w *World) Config() config.Config {
	return w.cfg
}

// Spawner returns the world's agent factory, sharing the run's random stream.
func (w *World) Spawner() *agents.Spawner {
	return w.spawner
}

// Add places a at c and appends it to the stepping order.
func (w *World) Add(a agents.Agent, c world.Coord) error {
	if _, dup := w.index[a.ID()]; dup {
		return fmt.Errorf("add agent %d: %w", a.ID(), world.ErrAlreadyPlaced)
	}
	if err := w.Grid.Place(a.ID(), c); err != nil {
		return fmt.Errorf("add agent: %w", err)
	}
	w.Agents = append(w.Agents, a)
	w.index[a.ID()] = a
	return nil
}

// Lookup returns the live agent with id, or nil.
func (w *World) Lookup(id agents.AgentID) agents.Agent {
	return w.index[id]
}

// QueueKill marks id for removal at the end of the current tick.
func (w *World) QueueKill(id agents.AgentID) {
	w.pending = append(w.pending, id)
}

// Pending returns the ids queued for removal, deduplicated, in queue order.
func (w *World) Pending() []agents.AgentID {
	out := make([]agents.AgentID, 0, len(w.pending))
	seen := make(map[agents.AgentID]bool, len(w.pending))
	for _, id := range w.pending {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Running reports whether the run is still viable.
func (w *World) Running() bool {
	return w.running
}

// StepContext returns the per-tick handle agents step against.
func (w *World) StepContext() *agents.Context {
	return &agents.Context{
		Grid:            w.Grid,
		Rand:            w.rng,
		Bank:            w.Bank,
		Population:      w,
		Legitimacy:      w.Legitimacy,
		MeanSavings:     w.meanSavings,
		ActiveThreshold: w.cfg.ActiveThreshold,
		RichThreshold:   w.cfg.RichThreshold,
		IncludeWealth:   w.cfg.IncludeWealth,
		CitizenVision:   w.cfg.CitizenVision,
		CopVision:       w.cfg.CopVision,
		JailPeriod:      w.cfg.JailPeriod,
		KillThreshold:   w.cfg.KillThreshold,
	}
}

// Tick advances the world one step: snapshot statistics, step every agent,
// decay legitimacy, drain the kill list, and check the population floor.
func (w *World) Tick(ctx context.Context) error {
	w.LastTick++

	w.Stats = w.collectStats()
	if w.recorder != nil {
		if err := w.recorder.Record(ctx, w.RunID, w.Stats); err != nil {
			return fmt.Errorf("record stats: %w", err)
		}
	}

	w.meanSavings = w.meanCitizenSavings()
	sctx := w.StepContext()
	// Agents are never added mid-tick, so ranging the slice header is stable.
	for _, a := range w.Agents {
		if err := a.Step(sctx); err != nil {
			return fmt.Errorf("tick %d: step agent %d: %w", w.LastTick, a.ID(), err)
		}
	}

	w.decayLegitimacy()

	if err := w.drainKills(); err != nil {
		return fmt.Errorf("tick %d: %w", w.LastTick, err)
	}

	if w.cfg.StrictInvariants {
		if err := w.CheckInvariants(); err != nil {
			return fmt.Errorf("tick %d: %w", w.LastTick, err)
		}
	}

	if w.running && w.CitizenCount() < params.PopulationFloor {
		w.running = false
		slog.Info("simulation halted",
			"reason", "population floor",
			"tick", w.LastTick,
			"citizens", w.CitizenCount(),
		)
	}
	return nil
}

func (w *World) decayLegitimacy() {
	if !w.cfg.LegitimacyDecay {
		return
	}
	w.Legitimacy = math.Max(0, w.Legitimacy-w.cfg.ReductionConstant)
}

// meanCitizenSavings is the hardship reference; 0 with no citizens.
func (w *World) meanCitizenSavings() float64 {
	total, n := 0.0, 0
	for _, a := range w.Agents {
		if c, ok := a.(*agents.Citizen); ok {
			total += c.Account.Savings
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// drainKills removes every queued agent from the grid and the roster. The
// queue is checked before anything is removed, so an unknown id fails the
// drain and leaves the world untouched.
func (w *World) drainKills() error {
	queued := w.Pending()
	w.pending = w.pending[:0]
	if len(queued) == 0 {
		return nil
	}
	for _, id := range queued {
		if _, ok := w.index[id]; !ok {
			return fmt.Errorf("remove agent %d: %w", id, ErrUnknownAgent)
		}
	}

	doomed := make(map[agents.AgentID]bool, len(queued))
	for _, id := range queued {
		a := w.index[id]
		if err := w.Grid.Remove(id); err != nil {
			return fmt.Errorf("remove agent %d: %w", id, err)
		}
		delete(w.index, id)
		doomed[id] = true
		switch a.(type) {
		case *agents.Citizen:
			w.Killed.Citizens++
		case *agents.Cop:
			w.Killed.Cops++
		}
	}
	w.Agents = slices.DeleteFunc(w.Agents, func(a agents.Agent) bool { return doomed[a.ID()] })

	slog.Debug("agents removed", "tick", w.LastTick, "count", len(queued))
	return nil
}

// CitizenCount returns the number of live citizens.
func (w *World) CitizenCount() int {
	n := 0
	for _, a := range w.Agents {
		if _, ok := a.(*agents.Citizen); ok {
			n++
		}
	}
	return n
}

// CopCount returns the number of live cops.
func (w *World) CopCount() int {
	n := 0
	for _, a := range w.Agents {
		if _, ok := a.(*agents.Cop); ok {
			n++
		}
	}
	return n
}

// CheckInvariants verifies the grid and the roster agree.
func (w *World) CheckInvariants() error {
	if err := w.Grid.Check(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if len(w.Agents) != len(w.index) || len(w.Agents) != w.Grid.Len() {
		return fmt.Errorf("roster has %d agents, index %d, grid %d", len(w.Agents), len(w.index), w.Grid.Len())
	}
	for _, a := range w.Agents {
		if _, ok := w.Grid.Position(a.ID()); !ok {
			return fmt.Errorf("agent %d: %w", a.ID(), world.ErrNotPlaced)
		}
	}
	return nil
}
