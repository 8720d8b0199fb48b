package allocator

import (
	"fmt"
	"sort"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

// ActivityDay is the unit of capacity: one activity on one day. The same
// activity name on different days is a distinct entry.
type ActivityDay struct {
	Day      string
	Activity string
}

// Ledger tracks remaining seats per activity-day. Seats are set once at
// initialisation and only ever decremented by commits; they never go
// negative. Single-threaded, owned by the allocator for the whole run.
type Ledger struct {
	remaining map[ActivityDay]int
}

func NewLedger() *Ledger {
	return &Ledger{remaining: make(map[ActivityDay]int)}
}

// InitLedger seeds a ledger with every activity-day named anywhere in the
// preference set, using capacityFor to resolve the configured seat count.
func InitLedger(set model.PreferenceSet, capacityFor func(day, activity string) int) *Ledger {
	l := NewLedger()
	for day, activities := range set.ActivitiesByDay() {
		for activity := range activities {
			l.Set(day, activity, capacityFor(day, activity))
		}
	}
	return l
}

// Set fixes the seat count for an activity-day. Negative counts clamp to zero.
func (l *Ledger) Set(day, activity string, seats int) {
	if seats < 0 {
		seats = 0
	}
	l.remaining[ActivityDay{Day: day, Activity: activity}] = seats
}

// Remaining returns the current seat count, zero for unknown activity-days.
func (l *Ledger) Remaining(day, activity string) int {
	return l.remaining[ActivityDay{Day: day, Activity: activity}]
}

// Commit consumes one seat. Committing with zero seats remaining returns
// ErrCapacityExhausted; callers must check Remaining first.
func (l *Ledger) Commit(day, activity string) error {
	key := ActivityDay{Day: day, Activity: activity}
	if l.remaining[key] <= 0 {
		return fmt.Errorf("commit %s/%s: %w", day, activity, ErrCapacityExhausted)
	}
	l.remaining[key]--
	return nil
}

// ActivityDays returns the ledger's keys in sorted order.
func (l *Ledger) ActivityDays() []ActivityDay {
	keys := make([]ActivityDay, 0, len(l.remaining))
	for key := range l.remaining {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Activity < keys[j].Activity
	})
	return keys
}
