package allocator

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlath/flow"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

// Outcome is the result of one allocation run.
type Outcome struct {
	// Assignments maps each committed (student, day) slot to its activity.
	Assignments model.Assignments

	// CommitCount is the total number of commitments made across all passes.
	CommitCount int

	// FailedPasses counts (tier, level) passes skipped because the solver or
	// the network build failed. Failed passes degrade the result, they never
	// abort the run.
	FailedPasses int
}

// Allocate runs the tiered, level-staged allocation over the full preference
// set. Tiers are fully serialized: every pass for a higher tier completes
// before any pass for a lower tier begins, so capacity contention always
// resolves in favour of the higher tier. Within a tier, the three preference
// levels are attempted in order, each as an independent max-flow solve over
// a freshly built network reflecting the live ledger and assignment state.
//
// Returns ErrNoAssignmentsMade when the run commits nothing at all.
func Allocate(ctx context.Context, set model.PreferenceSet, ledger *Ledger, logger *zap.Logger) (*Outcome, error) {
	outcome := &Outcome{Assignments: make(model.Assignments)}

	for _, tier := range model.Tiers() {
		students := set.ByTier(tier)
		if len(students) == 0 {
			continue
		}
		logger.Debug("Processing tier",
			zap.String("tier", string(tier)),
			zap.Int("students", len(students)))

		for _, level := range model.Levels() {
			if err := runPass(ctx, students, level, ledger, outcome); err != nil {
				// An exhausted commit means the builder offered a seat the
				// ledger did not have: internal-consistency fault, abort.
				if errors.Is(err, ErrCapacityExhausted) {
					return nil, err
				}
				outcome.FailedPasses++
				logger.Error("Pass failed, continuing with next pass",
					zap.String("tier", string(tier)),
					zap.String("level", level.Label()),
					zap.Error(err))
			}
		}
	}

	if outcome.CommitCount == 0 {
		return nil, ErrNoAssignmentsMade
	}
	return outcome, nil
}

// runPass builds and solves the network for one (tier, level) pair and
// commits every saturated candidate edge.
func runPass(ctx context.Context, students model.PreferenceSet, level model.Level, ledger *Ledger, outcome *Outcome) error {
	net, err := BuildLevelNetwork(students, level, ledger, outcome.Assignments)
	if err != nil {
		return fmt.Errorf("build network: %w", err)
	}

	// Nothing to route: every slot committed already, or no seats left for
	// any candidate activity.
	if len(net.Candidates) == 0 || !net.Graph.HasVertex(sinkNode) {
		return nil
	}

	opts := flow.DefaultOptions()
	opts.Ctx = ctx
	maxFlow, residual, err := flow.Dinic(net.Graph, sourceNode, sinkNode, opts)
	if err != nil {
		return fmt.Errorf("max-flow solve: %w", err)
	}
	if maxFlow == 0 {
		return nil
	}

	for _, c := range net.Candidates {
		if !net.saturated(residual, c) {
			continue
		}
		key := model.StudentDay{Student: c.Student, Day: c.Day}
		if _, done := outcome.Assignments[key]; done {
			continue
		}
		// The builder never offers a seat the ledger does not have, so a
		// failed commit here is an internal-consistency fault and fatal.
		if err := ledger.Commit(c.Day, c.Activity); err != nil {
			return err
		}
		outcome.Assignments[key] = c.Activity
		outcome.CommitCount++
	}

	return nil
}
