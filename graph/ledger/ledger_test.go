package ledger_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/enrichgraph-go/graph/ledger"
)

// TestStoreContractConsistency verifies that every Store implementation
// records and retrieves a Run identically.
func TestStoreContractConsistency(t *testing.T) {
	testScenarios := []struct {
		name      string
		storeFunc func(*testing.T) (ledger.Store, func())
	}{
		{
			name: "MemoryStore",
			storeFunc: func(t *testing.T) (ledger.Store, func()) {
				return ledger.NewMemoryStore(), func() {}
			},
		},
		{
			name: "SQLiteStore",
			storeFunc: func(t *testing.T) (ledger.Store, func()) {
				tmpDir := t.TempDir()
				dbPath := filepath.Join(tmpDir, "ledger.db")
				st, err := ledger.NewSQLiteStore(dbPath)
				if err != nil {
					t.Fatalf("NewSQLiteStore failed: %v", err)
				}
				return st, func() { st.Close() }
			},
		},
		{
			name: "MySQLStore",
			storeFunc: func(t *testing.T) (ledger.Store, func()) {
				dsn := os.Getenv("TEST_MYSQL_DSN")
				if dsn == "" {
					t.Skip("skipping MySQL test: TEST_MYSQL_DSN not set")
				}
				st, err := ledger.NewMySQLStore(dsn)
				if err != nil {
					t.Fatalf("NewMySQLStore failed: %v", err)
				}
				return st, func() { st.Close() }
			},
		},
	}

	for _, scenario := range testScenarios {
		t.Run(scenario.name+"/RecordAndGet", func(t *testing.T) {
			ctx := context.Background()
			st, cleanup := scenario.storeFunc(t)
			defer cleanup()

			run := ledger.Run{
				RunID:       "run-" + scenario.name,
				RecordHash:  "sha256:abc123",
				OutputJSON:  []byte(`{"summary":"ok"}`),
				MetricsJSON: []byte(`{"nodes_run":3}`),
				Duration:    250 * time.Millisecond,
				CompletedAt: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC),
			}

			if err := st.Record(ctx, run); err != nil {
				t.Fatalf("Record failed: %v", err)
			}

			got, err := st.Get(ctx, run.RunID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}

			if got.RunID != run.RunID {
				t.Errorf("RunID mismatch: got=%s want=%s", got.RunID, run.RunID)
			}
			if got.RecordHash != run.RecordHash {
				t.Errorf("RecordHash mismatch: got=%s want=%s", got.RecordHash, run.RecordHash)
			}
			if string(got.OutputJSON) != string(run.OutputJSON) {
				t.Errorf("OutputJSON mismatch: got=%s want=%s", got.OutputJSON, run.OutputJSON)
			}
			if string(got.MetricsJSON) != string(run.MetricsJSON) {
				t.Errorf("MetricsJSON mismatch: got=%s want=%s", got.MetricsJSON, run.MetricsJSON)
			}
			if got.Duration != run.Duration {
				t.Errorf("Duration mismatch: got=%v want=%v", got.Duration, run.Duration)
			}
			if !got.CompletedAt.Equal(run.CompletedAt) {
				t.Errorf("CompletedAt mismatch: got=%v want=%v", got.CompletedAt, run.CompletedAt)
			}
		})

		t.Run(scenario.name+"/GetNotFound", func(t *testing.T) {
			ctx := context.Background()
			st, cleanup := scenario.storeFunc(t)
			defer cleanup()

			_, err := st.Get(ctx, "nonexistent-run")
			if !errors.Is(err, ledger.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run(scenario.name+"/RecordOverwritesExisting", func(t *testing.T) {
			ctx := context.Background()
			st, cleanup := scenario.storeFunc(t)
			defer cleanup()

			runID := "run-overwrite-" + scenario.name
			first := ledger.Run{
				RunID:       runID,
				RecordHash:  "sha256:first",
				OutputJSON:  []byte(`{"v":1}`),
				MetricsJSON: []byte(`{}`),
				Duration:    time.Second,
				CompletedAt: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC),
			}
			if err := st.Record(ctx, first); err != nil {
				t.Fatalf("first Record failed: %v", err)
			}

			second := first
			second.RecordHash = "sha256:second"
			second.OutputJSON = []byte(`{"v":2}`)
			second.Duration = 2 * time.Second
			if err := st.Record(ctx, second); err != nil {
				t.Fatalf("second Record failed: %v", err)
			}

			got, err := st.Get(ctx, runID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.RecordHash != "sha256:second" {
				t.Errorf("expected overwritten RecordHash, got %s", got.RecordHash)
			}
			if string(got.OutputJSON) != `{"v":2}` {
				t.Errorf("expected overwritten OutputJSON, got %s", got.OutputJSON)
			}
			if got.Duration != 2*time.Second {
				t.Errorf("expected overwritten Duration, got %v", got.Duration)
			}
		})
	}
}
