// Package ledger records an audit trail of completed Graph runs: one row
// per finished run_id, carrying the output and metrics produced plus a
// hash of the input record. It is not execution-state persistence — there
// is no resume or checkpoint concept here, only a durable history of runs
// that already finished.
package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a run_id has no recorded entry.
var ErrNotFound = errors.New("ledger: run not found")

// Run is one completed Graph.Run, ready to persist.
type Run struct {
	RunID       string
	RecordHash  string
	OutputJSON  []byte
	MetricsJSON []byte
	Duration    time.Duration
	CompletedAt time.Time
}

// Store persists and retrieves completed runs.
type Store interface {
	Record(ctx context.Context, run Run) error
	Get(ctx context.Context, runID string) (Run, error)
	Close() error
}
