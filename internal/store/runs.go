package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one `check` invocation.
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Tracked    int
	Discovered int
	Updates    int
	Failures   int
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

func (s *Store) StartRun(ctx context.Context, now time.Time) (Run, error) {
	run := Run{ID: uuid.New(), StartedAt: now.UTC()}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID.String(), toMillis(run.StartedAt))
	if err != nil {
		return Run{}, fmt.Errorf("start run: %w", err)
	}

	return run, nil
}

func (s *Store) FinishRun(ctx context.Context, run Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, tracked = ?, discovered = ?, updates = ?, failures = ?
		 WHERE id = ?`,
		toMillis(run.FinishedAt), run.Tracked, run.Discovered, run.Updates, run.Failures,
		run.ID.String())
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run: run %s not found", run.ID)
	}

	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, tracked, discovered, updates, failures
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			id       string
			started  int64
			finished sql.NullInt64
			r        Run
		)
		if err := rows.Scan(&id, &started, &finished, &r.Tracked, &r.Discovered, &r.Updates, &r.Failures); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("run id %q: %w", id, err)
		}
		r.StartedAt = fromMillis(started)
		if finished.Valid {
			r.FinishedAt = fromMillis(finished.Int64)
		}

		out = append(out, r)
	}

	return out, rows.Err()
}
