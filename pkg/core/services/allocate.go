package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/internal/config"
	"github.com/fillorkill/ActivityAllocation/pkg/core/allocator"
	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

// AssignmentRecord is one committed assignment as handed to the run store.
type AssignmentRecord struct {
	Student        string
	Day            string
	SessionDate    *time.Time
	Activity       string
	Tier           model.Tier
	SatisfiedLevel string
}

// RunRecord is the persisted shape of one allocation run.
type RunRecord struct {
	ID           string
	Source       string
	StudentCount int
	Assignments  []AssignmentRecord
	Unassigned   []model.UnassignedRecord
}

// RunStore defines the persistence operations needed to record a run
type RunStore interface {
	SaveRun(ctx context.Context, run *RunRecord) error
}

// AllocateOptions configures one AllocateActivities call.
type AllocateOptions struct {
	// Source is the preferences file the set was loaded from, for the report.
	Source string

	// DryRun skips the store even when one is configured.
	DryRun bool

	// Store persists the run when non-nil.
	Store RunStore
}

// AllocationResult contains the allocation results
type AllocationResult struct {
	RunID        string
	Assignments  model.Assignments
	Summary      model.Summary
	Usage        map[allocator.ActivityDay]int
	SessionDates map[string]time.Time
	FailedPasses int
	Stored       bool
}

// AllocateActivities runs the full pipeline over a loaded preference set:
// seed the capacity ledger from configuration, run the tiered allocator,
// aggregate satisfaction, and optionally persist the run.
func AllocateActivities(
	ctx context.Context,
	set model.PreferenceSet,
	cfg *config.Config,
	logger *zap.Logger,
	opts AllocateOptions,
) (*AllocationResult, error) {
	logger.Debug("Starting allocation",
		zap.Int("students", len(set)),
		zap.Int("records", set.RecordCount()),
		zap.Bool("dry_run", opts.DryRun))

	ledger := allocator.InitLedger(set, cfg.CapacityFor)

	outcome, err := allocator.Allocate(ctx, set, ledger, logger)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}
	logger.Info("Allocation complete",
		zap.Int("commitments", outcome.CommitCount),
		zap.Int("failed_passes", outcome.FailedPasses))

	summary := allocator.Summarize(set, outcome.Assignments)

	usage := make(map[allocator.ActivityDay]int)
	for slot, activity := range outcome.Assignments {
		usage[allocator.ActivityDay{Day: slot.Day, Activity: activity}]++
	}

	sessionDates, err := cfg.SessionDates()
	if err != nil {
		return nil, fmt.Errorf("failed to expand term schedule: %w", err)
	}

	result := &AllocationResult{
		RunID:        uuid.NewString(),
		Assignments:  outcome.Assignments,
		Summary:      summary,
		Usage:        usage,
		SessionDates: sessionDates,
		FailedPasses: outcome.FailedPasses,
	}

	if opts.Store != nil && !opts.DryRun {
		record := buildRunRecord(result, set, opts.Source)
		if err := opts.Store.SaveRun(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
		result.Stored = true
		logger.Info("Run saved", zap.String("run_id", result.RunID))
	}

	return result, nil
}

// buildRunRecord flattens the result into the store's record shape.
func buildRunRecord(result *AllocationResult, set model.PreferenceSet, source string) *RunRecord {
	record := &RunRecord{
		ID:           result.RunID,
		Source:       source,
		StudentCount: len(set),
		Unassigned:   result.Summary.Unassigned,
	}

	for _, student := range set.StudentIDs() {
		prefs := set[student]

		days := make([]string, 0, len(prefs.Days))
		for day := range prefs.Days {
			days = append(days, day)
		}
		sort.Strings(days)

		for _, day := range days {
			choices := prefs.Days[day]
			activity, ok := result.Assignments[model.StudentDay{Student: student, Day: day}]
			if !ok {
				continue
			}

			satisfied := "other"
			if level, matched := choices.LevelOf(activity); matched {
				satisfied = level.Label()
			}

			rec := AssignmentRecord{
				Student:        student,
				Day:            day,
				Activity:       activity,
				Tier:           prefs.Tier,
				SatisfiedLevel: satisfied,
			}
			if date, ok := result.SessionDates[day]; ok {
				rec.SessionDate = &date
			}
			record.Assignments = append(record.Assignments, rec)
		}
	}

	return record
}
