package postgres

import (
	"context"
	"fmt"
	"time"
)

// RunSummary is one row of the run history.
type RunSummary struct {
	ID              string
	CreatedAt       time.Time
	Source          string
	StudentCount    int
	AssignmentCount int
	UnassignedCount int
}

// ListRuns retrieves past allocation runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, created_at, source, student_count, assignment_count, unassigned_count
		FROM allocation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.StudentCount, &r.AssignmentCount, &r.UnassignedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}
