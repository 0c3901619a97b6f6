package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a Store backed by MySQL/MariaDB, for production deployments
// where the run audit trail must outlive any single process and be
// queryable by other tooling.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection pool against dsn and migrates the
// graph_runs table. dsn follows the go-sql-driver/mysql DSN format, e.g.
// "user:pass@tcp(127.0.0.1:3306)/enrichgraph?parseTime=true".
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open mysql: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: ping mysql: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaMySQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: migrate mysql: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

const schemaMySQL = `
CREATE TABLE IF NOT EXISTS graph_runs (
	run_id       VARCHAR(64) PRIMARY KEY,
	record_hash  VARCHAR(128) NOT NULL,
	output_json  LONGBLOB NOT NULL,
	metrics_json LONGBLOB NOT NULL,
	duration_ns  BIGINT NOT NULL,
	completed_at VARCHAR(64) NOT NULL
)`

func (s *MySQLStore) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO graph_runs (run_id, record_hash, output_json, metrics_json, duration_ns, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
			record_hash=VALUES(record_hash), output_json=VALUES(output_json),
			metrics_json=VALUES(metrics_json), duration_ns=VALUES(duration_ns),
			completed_at=VALUES(completed_at)`,
		run.RunID, run.RecordHash, run.OutputJSON, run.MetricsJSON,
		run.Duration.Nanoseconds(), run.CompletedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("ledger: record run: %w", err)
	}
	return nil
}

func (s *MySQLStore) Get(ctx context.Context, runID string) (Run, error) {
	return scanRun(s.db.QueryRowContext(ctx,
		`SELECT run_id, record_hash, output_json, metrics_json, duration_ns, completed_at
		 FROM graph_runs WHERE run_id = ?`, runID))
}

func (s *MySQLStore) Close() error { return s.db.Close() }
