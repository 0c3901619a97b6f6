package ledger

import (
	"database/sql"
	"errors"
	"time"
)

const timeLayout = time.RFC3339Nano

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var durationNS int64
	var completedAt string

	err := row.Scan(&run.RunID, &run.RecordHash, &run.OutputJSON, &run.MetricsJSON, &durationNS, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}

	run.Duration = time.Duration(durationNS)
	run.CompletedAt, err = time.Parse(timeLayout, completedAt)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}
