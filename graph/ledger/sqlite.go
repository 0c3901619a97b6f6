package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a single SQLite file. Good for local
// development or single-process deployments; SQLite allows one writer at
// a time, so the connection pool is capped accordingly.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) path, which may be ":memory:" for a
// throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schemaSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: migrate sqlite: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS graph_runs (
	run_id       TEXT PRIMARY KEY,
	record_hash  TEXT NOT NULL,
	output_json  BLOB NOT NULL,
	metrics_json BLOB NOT NULL,
	duration_ns  INTEGER NOT NULL,
	completed_at TEXT NOT NULL
)`

func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO graph_runs (run_id, record_hash, output_json, metrics_json, duration_ns, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
			record_hash=excluded.record_hash, output_json=excluded.output_json,
			metrics_json=excluded.metrics_json, duration_ns=excluded.duration_ns,
			completed_at=excluded.completed_at`,
		run.RunID, run.RecordHash, run.OutputJSON, run.MetricsJSON,
		run.Duration.Nanoseconds(), run.CompletedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("ledger: record run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, runID string) (Run, error) {
	return scanRun(s.db.QueryRowContext(ctx,
		`SELECT run_id, record_hash, output_json, metrics_json, duration_ns, completed_at
		 FROM graph_runs WHERE run_id = ?`, runID))
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
