package scores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBestOnlyRises(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if best, err := s.Best(ctx); err != nil || best != 0 {
		t.Fatalf("empty store: best=%v err=%v", best, err)
	}

	cases := []struct {
		duration float64
		want     float64
	}{
		{12.5, 12.5},
		{8, 12.5},
		{30.25, 30.25},
	}
	for _, c := range cases {
		run, err := s.RecordRun(ctx, 7, c.duration, 3)
		if err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
		if _, err := uuid.Parse(run.ID); err != nil {
			t.Fatalf("run id %q is not a uuid", run.ID)
		}
		best, err := s.Best(ctx)
		if err != nil {
			t.Fatalf("Best: %v", err)
		}
		if best != c.want {
			t.Fatalf("after %v: expected best %v, got %v", c.duration, c.want, best)
		}
	}
}

func TestClearBestKeepsHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, d := range []float64{5, 9, 2} {
		if _, err := s.RecordRun(ctx, 1, d, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.ClearBest(ctx); err != nil {
		t.Fatalf("ClearBest: %v", err)
	}
	if best, _ := s.Best(ctx); best != 0 {
		t.Fatalf("expected cleared best, got %v", best)
	}

	top, err := s.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].Duration != 9 || top[1].Duration != 5 {
		t.Fatalf("unexpected top runs %+v", top)
	}
	recent, err := s.Recent(ctx, 0)
	if err != nil || len(recent) != 3 {
		t.Fatalf("expected 3 recent runs, got %d (%v)", len(recent), err)
	}

	if _, err := s.RecordRun(ctx, 1, 4, 0); err != nil {
		t.Fatal(err)
	}
	if best, _ := s.Best(ctx); best != 4 {
		t.Fatalf("first run after clear sets best, got %v", best)
	}
}

func TestClosedStore(t *testing.T) {
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Best(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCorruptTimestampIsReported(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.RecordRun(ctx, 1, 5, 2); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, seed, duration, kills, recorded_at) VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), 1, 9, 4, "yesterday",
	); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	if _, err := s.Recent(ctx, 10); err == nil {
		t.Fatalf("expected an error for an unparseable recorded_at")
	}
	if _, err := s.Top(ctx, 10); err == nil {
		t.Fatalf("expected an error for an unparseable recorded_at")
	}
}
