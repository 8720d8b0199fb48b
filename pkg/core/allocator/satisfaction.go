package allocator

import (
	"sort"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

// Summarize classifies every committed assignment against the student's
// original ranked choices and collects every (student, day) record that ended
// the run unassigned. Pure: reads the preference set and assignment map,
// mutates neither.
//
// The "other" bucket is unreachable when the assignments come from Allocate,
// since every commitment arises from a level-matched candidate edge; it
// exists as a defensive category only.
func Summarize(set model.PreferenceSet, assignments model.Assignments) model.Summary {
	summary := model.Summary{
		PerTier:    make(map[model.Tier]model.Counts),
		Unassigned: []model.UnassignedRecord{},
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
			activity, ok := assignments[model.StudentDay{Student: student, Day: day}]
			if !ok {
				summary.Unassigned = append(summary.Unassigned, model.UnassignedRecord{
					Student: student,
					Day:     day,
					Tier:    prefs.Tier,
					Choices: choices,
				})
				continue
			}

			level, matched := choices.LevelOf(activity)
			summary.Overall.Add(level, matched)
			tierCounts := summary.PerTier[prefs.Tier]
			tierCounts.Add(level, matched)
			summary.PerTier[prefs.Tier] = tierCounts
			summary.TotalAssigned++
		}
	}

	return summary
}
