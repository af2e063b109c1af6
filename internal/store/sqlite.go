// Package store persists export-run history in SQLite.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// ExportRun is one recorded export: what was read, what was written, and how
// the run went.
type ExportRun struct {
	ID        string        `json:"id"`
	Input     string        `json:"input"`
	Output    string        `json:"output"`
	Format    string        `json:"format"`
	Records   int           `json:"records"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path and configures WAL mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS export_runs (
	id          TEXT PRIMARY KEY,
	input       TEXT NOT NULL,
	output      TEXT NOT NULL,
	format      TEXT NOT NULL,
	records     INTEGER NOT NULL,
	skipped     INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_export_runs_created_at ON export_runs(created_at);
`

// Migrate creates the schema; safe to call on every start.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run, assigning its ID and CreatedAt.
func (s *Store) RecordRun(ctx context.Context, run *ExportRun) error {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO export_runs (id, input, output, format, records, skipped, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Output, run.Format,
		run.Records, run.Skipped, run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "store: insert run")
	}
	return nil
}

// ListRuns returns runs newest first, up to limit (0 means no limit).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ExportRun, error) {
	query := `SELECT id, input, output, format, records, skipped, duration_ms, created_at
		FROM export_runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []ExportRun
	for rows.Next() {
		var run ExportRun
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.Input, &run.Output, &run.Format,
			&run.Records, &run.Skipped, &durationMS, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate runs")
	}
	return runs, nil
}
