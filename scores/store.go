// Package scores keeps the run history and best survival time in sqlite.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrClosed = errors.New("scores: store closed")

// Run is one finished session.
type Run struct {
	ID         string
	Seed       uint64
	Duration   float64
	Kills      int
	RecordedAt time.Time
}

type Store struct {
	db *sql.DB
}

// OpenSQLite opens or creates the score database at path.
func OpenSQLite(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("scores: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("scores: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scores: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("scores: %s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			duration REAL NOT NULL,
			kills INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_duration ON runs(duration DESC);`,
		`CREATE TABLE IF NOT EXISTS best (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			duration REAL NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("scores: init schema: %w", err)
		}
	}
	return nil
}

// RecordRun stores a finished run under a fresh id and raises the best time
// when the run beat it. It returns the stored run.
func (s *Store) RecordRun(ctx context.Context, seed uint64, duration float64, kills int) (Run, error) {
	if s == nil || s.db == nil {
		return Run{}, ErrClosed
	}
	run := Run{
		ID:         uuid.NewString(),
		Seed:       seed,
		Duration:   duration,
		Kills:      kills,
		RecordedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("scores: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(id, seed, duration, kills, recorded_at) VALUES(?, ?, ?, ?, ?)`,
		run.ID, int64(run.Seed), run.Duration, run.Kills, run.RecordedAt.Format(time.RFC3339Nano),
	); err != nil {
		return Run{}, fmt.Errorf("scores: insert run: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO best(id, duration) VALUES(1, ?)
		 ON CONFLICT(id) DO UPDATE SET duration = excluded.duration WHERE excluded.duration > best.duration`,
		run.Duration,
	); err != nil {
		return Run{}, fmt.Errorf("scores: update best: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("scores: commit: %w", err)
	}
	return run, nil
}

// Best returns the best survival time, or 0 when none is stored.
func (s *Store) Best(ctx context.Context) (float64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	var best float64
	err := s.db.QueryRowContext(ctx, `SELECT duration FROM best WHERE id = 1`).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("scores: best: %w", err)
	}
	return best, nil
}

// ClearBest forgets the best time. The run history is kept.
func (s *Store) ClearBest(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM best`); err != nil {
		return fmt.Errorf("scores: clear best: %w", err)
	}
	return nil
}

// Recent lists up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	return s.query(ctx, `SELECT id, seed, duration, kills, recorded_at FROM runs ORDER BY recorded_at DESC LIMIT ?`, limit)
}

// Top lists up to limit runs, longest first.
func (s *Store) Top(ctx context.Context, limit int) ([]Run, error) {
	return s.query(ctx, `SELECT id, seed, duration, kills, recorded_at FROM runs ORDER BY duration DESC LIMIT ?`, limit)
}

func (s *Store) query(ctx context.Context, q string, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("scores: query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run  Run
			seed int64
			at   string
		)
		if err := rows.Scan(&run.ID, &seed, &run.Duration, &run.Kills, &at); err != nil {
			return nil, fmt.Errorf("scores: scan run: %w", err)
		}
		run.Seed = uint64(seed)
		recorded, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("scores: run %s recorded_at %q: %w", run.ID, at, err)
		}
		run.RecordedAt = recorded
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scores: iterate runs: %w", err)
	}
	return out, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
