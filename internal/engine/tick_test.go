package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_StopsAtMaxTicks(t *testing.T) {
	w, err := NewWorld(testConfig(8, 0.04, 0.7, 0.8))
	require.NoError(t, err)

	eng := NewEngine(w)
	eng.MaxTicks = 5
	calls := 0
	eng.OnTick = func(*World) { calls++ }

	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, uint64(5), w.LastTick)
	assert.Equal(t, 5, calls)
}

func TestEngine_StopsWhenWorldHalts(t *testing.T) {
	w, err := NewWorld(testConfig(4, 0, 0, 1.0))
	require.NoError(t, err)

	eng := NewEngine(w)
	eng.MaxTicks = 50
	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, uint64(1), w.LastTick)
	assert.False(t, w.Running())
}

func TestEngine_StopFromCallback(t *testing.T) {
	w, err := NewWorld(testConfig(8, 0.04, 0.7, 0.8))
	require.NoError(t, err)

	eng := NewEngine(w)
	eng.OnTick = func(w *World) {
		if w.LastTick == 3 {
			eng.Stop()
		}
	}
	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, uint64(3), w.LastTick)
}

func TestEngine_CanceledContext(t *testing.T) {
	w, err := NewWorld(testConfig(8, 0.04, 0.7, 0.8))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := NewEngine(w)
	require.NoError(t, eng.Run(ctx))
	assert.Zero(t, w.LastTick)
}

func TestEngine_StopBeforeRun(t *testing.T) {
	w, err := NewWorld(testConfig(8, 0.04, 0.7, 0.8))
	require.NoError(t, err)

	eng := NewEngine(w)
	eng.Stop()
	require.NoError(t, eng.Run(context.Background()))
	assert.Zero(t, w.LastTick)
}

func TestEngine_PropagatesTickErrors(t *testing.T) {
	w, err := NewWorld(testConfig(8, 0.04, 0.7, 0.8))
	require.NoError(t, err)
	w.QueueKill(9999)

	eng := NewEngine(w)
	eng.MaxTicks = 3
	err = eng.Run(context.Background())
	assert.ErrorIs(t, err, ErrUnknownAgent)
	assert.Equal(t, uint64(1), w.LastTick)
}

func TestNewEngine_ReadsConfig(t *testing.T) {
	cfg := testConfig(5, 0, 0.5, 1.0)
	cfg.MaxTicks = 12
	cfg.ReportEvery = 4
	cfg.TickIntervalMs = 20
	w, err := NewWorld(cfg)
	require.NoError(t, err)

	eng := NewEngine(w)
	assert.Equal(t, uint64(12), eng.MaxTicks)
	assert.Equal(t, uint64(4), eng.ReportEvery)
	assert.Equal(t, cfg.TickInterval(), eng.Interval)
}
