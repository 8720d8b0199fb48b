package postgres

import (
	"context"
	"fmt"

	"github.com/fillorkill/ActivityAllocation/pkg/core/services"
)

// SaveRun writes one allocation run and all of its rows in a single
// transaction, implementing services.RunStore.
func (db *DB) SaveRun(ctx context.Context, run *services.RunRecord) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO allocation_runs (id, source, student_count, assignment_count, unassigned_count)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Source, run.StudentCount, len(run.Assignments), len(run.Unassigned))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range run.Assignments {
		_, err = tx.Exec(ctx, `
			INSERT INTO allocation_assignments (run_id, student_id, day, session_date, activity, tier, satisfied_level)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			run.ID, a.Student, a.Day, a.SessionDate, a.Activity, string(a.Tier), a.SatisfiedLevel)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for %s/%s: %w", a.Student, a.Day, err)
		}
	}

	for _, u := range run.Unassigned {
		_, err = tx.Exec(ctx, `
			INSERT INTO allocation_unassigned (run_id, student_id, day, tier, first_choice, second_choice, third_choice)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			run.ID, u.Student, u.Day, string(u.Tier), u.Choices.First, u.Choices.Second, u.Choices.Third)
		if err != nil {
			return fmt.Errorf("failed to insert unassigned record for %s/%s: %w", u.Student, u.Day, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}
