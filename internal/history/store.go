// Package history keeps the per-tick statistics of simulation runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/unrest/internal/engine"
)

// ErrNoRecords is returned when a run has no recorded ticks.
var ErrNoRecords = errors.New("no records for run")

// ErrUnknownColumn is returned when a series is requested for a column the
// table does not have.
var ErrUnknownColumn = errors.New("unknown statistics column")

// columns lists every statistics column in table order.
var columns = []string{
	"tick",
	"citizens", "cops", "calm", "revolt", "jail",
	"rich", "middle", "poor", "rich_active", "middle_active", "poor_active",
	"rich_grievance", "middle_grievance", "poor_grievance",
	"rich_wealth", "middle_wealth", "poor_wealth",
	"rich_confidence", "middle_confidence", "poor_confidence",
	"rich_hardship", "middle_hardship", "poor_hardship",
	"legitimacy",
	"wo_calm", "wo_revolt", "wo_jail",
}

var knownColumn = func() map[string]bool {
	m := make(map[string]bool, len(columns))
	for _, c := range columns {
		m[c] = true
	}
	return m
}()

// Point is one sample of a statistics series.
type Point struct {
	Tick  uint64  `db:"tick" json:"tick"`
	Value float64 `db:"value" json:"value"`
}

type row struct {
	RunID string `db:"run_id"`
	engine.Stats
}

// Store wraps a SQLite connection holding tick statistics.
type Store struct {
	conn *sqlx.DB
}

// Open opens an in-memory statistics store. Its contents live as long as
// the store is open.
func Open() (*Store, error) {
	conn, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// Every pooled connection to :memory: would get its own database.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	var defs []string
	for _, c := range columns {
		typ := "REAL"
		if isCount(c) {
			typ = "INTEGER"
		}
		defs = append(defs, fmt.Sprintf("%s %s NOT NULL", c, typ))
	}
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS tick_stats (
		run_id TEXT NOT NULL,
		%s,
		PRIMARY KEY (run_id, tick)
	);
	`, strings.Join(defs, ",\n\t\t"))
	_, err := s.conn.Exec(schema)
	return err
}

func isCount(column string) bool {
	switch column {
	case "tick", "citizens", "cops", "calm", "revolt", "jail",
		"rich", "middle", "poor", "rich_active", "middle_active", "poor_active",
		"wo_calm", "wo_revolt", "wo_jail":
		return true
	}
	return false
}

var insertQuery = func() string {
	named := make([]string, len(columns))
	for i, c := range columns {
		named[i] = ":" + c
	}
	return fmt.Sprintf("INSERT OR REPLACE INTO tick_stats (run_id, %s) VALUES (:run_id, %s)",
		strings.Join(columns, ", "), strings.Join(named, ", "))
}()

// Record stores the statistics of one tick. Recording the same tick twice
// keeps the later snapshot.
func (s *Store) Record(ctx context.Context, runID uuid.UUID, st engine.Stats) error {
	if _, err := s.conn.NamedExecContext(ctx, insertQuery, row{RunID: runID.String(), Stats: st}); err != nil {
		return fmt.Errorf("record tick %d: %w", st.Tick, err)
	}
	return nil
}

// Latest returns the most recent statistics recorded for runID.
func (s *Store) Latest(ctx context.Context, runID uuid.UUID) (engine.Stats, error) {
	var r row
	query := fmt.Sprintf("SELECT run_id, %s FROM tick_stats WHERE run_id = ? ORDER BY tick DESC LIMIT 1",
		strings.Join(columns, ", "))
	err := s.conn.GetContext(ctx, &r, query, runID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Stats{}, fmt.Errorf("run %s: %w", runID, ErrNoRecords)
	}
	if err != nil {
		return engine.Stats{}, fmt.Errorf("latest stats: %w", err)
	}
	return r.Stats, nil
}

// Series returns one statistics column of runID in tick order.
func (s *Store) Series(ctx context.Context, runID uuid.UUID, column string) ([]Point, error) {
	if !knownColumn[column] {
		return nil, fmt.Errorf("%q: %w", column, ErrUnknownColumn)
	}
	var points []Point
	query := fmt.Sprintf("SELECT tick, %s AS value FROM tick_stats WHERE run_id = ? ORDER BY tick", column)
	if err := s.conn.SelectContext(ctx, &points, query, runID.String()); err != nil {
		return nil, fmt.Errorf("series %s: %w", column, err)
	}
	return points, nil
}

// Runs returns the ids of every run with recorded ticks.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.conn.SelectContext(ctx, &ids, "SELECT DISTINCT run_id FROM tick_stats ORDER BY run_id")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	slog.Debug("history runs listed", "count", len(ids))
	return ids, nil
}
