package history

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/unrest/internal/config"
	"github.com/talgya/unrest/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := uuid.New()

	first := engine.Stats{Tick: 1, Citizens: 10, Cops: 2, Calm: 9, Revolt: 1, Legitimacy: 80, PoorGrievance: 1.25}
	second := engine.Stats{Tick: 2, Citizens: 9, Cops: 2, Calm: 7, Revolt: 1, Jail: 1, Legitimacy: 79, RichWealth: 3.5}
	require.NoError(t, s.Record(ctx, run, first))
	require.NoError(t, s.Record(ctx, run, second))

	got, err := s.Latest(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStore_RecordReplacesTick(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := uuid.New()

	require.NoError(t, s.Record(ctx, run, engine.Stats{Tick: 4, Citizens: 3}))
	require.NoError(t, s.Record(ctx, run, engine.Stats{Tick: 4, Citizens: 5}))

	pts, err := s.Series(ctx, run, "citizens")
	require.NoError(t, err)
	assert.Equal(t, []Point{{Tick: 4, Value: 5}}, pts)
}

func TestStore_LatestEmptyRun(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Latest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestStore_Series(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run, other := uuid.New(), uuid.New()

	for tick := uint64(1); tick <= 3; tick++ {
		require.NoError(t, s.Record(ctx, run, engine.Stats{Tick: tick, Revolt: int(tick) * 2, Legitimacy: 100 - float64(tick)}))
	}
	require.NoError(t, s.Record(ctx, other, engine.Stats{Tick: 1, Revolt: 99}))

	revolt, err := s.Series(ctx, run, "revolt")
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}, {2, 4}, {3, 6}}, revolt)

	legit, err := s.Series(ctx, run, "legitimacy")
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 99}, {2, 98}, {3, 97}}, legit)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{run.String(), other.String()}, runs)
}

func TestStore_SeriesRejectsUnknownColumn(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Series(context.Background(), uuid.New(), "tick; DROP TABLE tick_stats")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestStore_RecordsSimulation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.GridSize = 8
	cfg.ReportEvery = 0
	w, err := engine.NewWorld(cfg, engine.WithRecorder(s))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, w.Tick(ctx))
	}

	pts, err := s.Series(ctx, w.RunID, "citizens")
	require.NoError(t, err)
	require.Len(t, pts, 4)
	assert.Equal(t, uint64(4), pts[3].Tick)

	latest, err := s.Latest(ctx, w.RunID)
	require.NoError(t, err)
	assert.Equal(t, w.Stats, latest)
}
