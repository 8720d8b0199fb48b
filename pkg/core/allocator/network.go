package allocator

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/core"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

const (
	sourceNode = "source"
	sinkNode   = "sink"
)

// Node IDs carry a kind prefix so student-day and activity-day nodes can
// never collide, whatever characters appear in the input identifiers.
func studentDayNode(student, day string) string {
	return fmt.Sprintf("sd|%s|%s", student, day)
}

func activityDayNode(day, activity string) string {
	return fmt.Sprintf("ad|%s|%s", day, activity)
}

// CandidateEdge is one unit-capacity student-day → activity-day edge offered
// to the solver in a single pass.
type CandidateEdge struct {
	Student  string
	Day      string
	Activity string
}

// Network is the capacitated bipartite graph for one (tier, level) pass,
// together with its candidate edges in deterministic (sorted) order.
type Network struct {
	Graph      *core.Graph
	Candidates []CandidateEdge
}

// BuildLevelNetwork constructs the flow network for one tier's students at a
// single preference level, against the ledger's current seat counts.
//
// Structure:
//   - source → (student, day), capacity 1, for every preference record of an
//     uncommitted slot;
//   - (student, day) → (day, level-ℓ choice), capacity 1;
//   - (day, activity) → sink, capacity = remaining seats (omitted when zero,
//     leaving the candidate edge a dead end the solver cannot saturate).
//
// Slots already present in assigned are omitted entirely, so a resolved
// student-day can never draw flow or consume seats in a later pass.
func BuildLevelNetwork(tier model.PreferenceSet, level model.Level, ledger *Ledger, assigned model.Assignments) (*Network, error) {
	g, err := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	if err != nil {
		return nil, fmt.Errorf("create flow network graph: %w", err)
	}

	var candidates []CandidateEdge
	sinkable := make(map[ActivityDay]bool)

	for _, student := range tier.StudentIDs() {
		prefs := tier[student]

		days := make([]string, 0, len(prefs.Days))
		for day := range prefs.Days {
			days = append(days, day)
		}
		sort.Strings(days)

		for _, day := range days {
			if _, done := assigned[model.StudentDay{Student: student, Day: day}]; done {
				continue
			}
			activity := prefs.Days[day].At(level)
			if activity == "" {
				continue
			}

			sd := studentDayNode(student, day)
			ad := activityDayNode(day, activity)
			if _, err := g.AddEdge(sourceNode, sd, 1); err != nil {
				return nil, fmt.Errorf("add source edge for %s/%s: %w", student, day, err)
			}
			if _, err := g.AddEdge(sd, ad, 1); err != nil {
				return nil, fmt.Errorf("add candidate edge %s/%s → %s: %w", student, day, activity, err)
			}
			candidates = append(candidates, CandidateEdge{Student: student, Day: day, Activity: activity})
			sinkable[ActivityDay{Day: day, Activity: activity}] = true
		}
	}

	for key := range sinkable {
		seats := ledger.Remaining(key.Day, key.Activity)
		if seats == 0 {
			continue
		}
		ad := activityDayNode(key.Day, key.Activity)
		if _, err := g.AddEdge(ad, sinkNode, float64(seats)); err != nil {
			return nil, fmt.Errorf("add sink edge for %s/%s: %w", key.Day, key.Activity, err)
		}
	}

	return &Network{Graph: g, Candidates: candidates}, nil
}

// saturated reports whether the candidate's unit edge carried flow, read from
// the solver's residual graph: a fully used forward edge has no remaining
// capacity and is absent from the residual.
func (n *Network) saturated(residual *core.Graph, c CandidateEdge) bool {
	return !residual.HasEdge(studentDayNode(c.Student, c.Day), activityDayNode(c.Day, c.Activity))
}
