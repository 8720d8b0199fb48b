package model

import (
	"fmt"
	"sort"
)

// Tier is the priority class of a student. Higher tiers are fully processed
// before lower tiers are considered at all.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Tiers returns the fixed processing order.
func Tiers() []Tier {
	return []Tier{TierHigh, TierMedium, TierLow}
}

func (t Tier) IsValid() bool {
	return t == TierHigh || t == TierMedium || t == TierLow
}

// ParseTier parses a priority value from input data.
// An empty value defaults to medium.
func ParseTier(s string) (Tier, error) {
	if s == "" {
		return TierMedium, nil
	}
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown priority %q (expected high, medium or low)", s)
	}
	return t, nil
}

// Level is a preference rank within a student's choices for one day.
type Level int

const (
	LevelFirst Level = iota
	LevelSecond
	LevelThird
)

// Levels returns the fixed order in which preference levels are attempted.
func Levels() []Level {
	return []Level{LevelFirst, LevelSecond, LevelThird}
}

func (l Level) Label() string {
	switch l {
	case LevelFirst:
		return "1st"
	case LevelSecond:
		return "2nd"
	case LevelThird:
		return "3rd"
	}
	return "other"
}

// Choices holds the three ranked activity names for one (student, day).
// Duplicate activity names across levels are legal input.
type Choices struct {
	First  string
	Second string
	Third  string
}

// At returns the activity named at the given preference level.
func (c Choices) At(l Level) string {
	switch l {
	case LevelFirst:
		return c.First
	case LevelSecond:
		return c.Second
	case LevelThird:
		return c.Third
	}
	return ""
}

// LevelOf classifies an assigned activity against the ranked choices.
// The lowest matching level wins when duplicates are present.
func (c Choices) LevelOf(activity string) (Level, bool) {
	for _, l := range Levels() {
		if c.At(l) == activity {
			return l, true
		}
	}
	return 0, false
}

// StudentPrefs is one student's tier and per-day ranked choices.
// Loaded once, read-only thereafter.
type StudentPrefs struct {
	Tier Tier
	Days map[string]Choices
}

// PreferenceSet maps student IDs to their loaded preferences.
type PreferenceSet map[string]*StudentPrefs

// StudentIDs returns all student IDs in sorted order.
func (p PreferenceSet) StudentIDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ByTier returns the subset of students in the given tier.
func (p PreferenceSet) ByTier(t Tier) PreferenceSet {
	subset := make(PreferenceSet)
	for id, prefs := range p {
		if prefs.Tier == t {
			subset[id] = prefs
		}
	}
	return subset
}

// RecordCount returns the number of (student, day) preference records.
func (p PreferenceSet) RecordCount() int {
	n := 0
	for _, prefs := range p {
		n += len(prefs.Days)
	}
	return n
}

// ActivitiesByDay returns every activity named on each day, across all
// preference levels. Used to seed capacities and to report demand.
func (p PreferenceSet) ActivitiesByDay() map[string]map[string]bool {
	byDay := make(map[string]map[string]bool)
	for _, prefs := range p {
		for day, choices := range prefs.Days {
			if byDay[day] == nil {
				byDay[day] = make(map[string]bool)
			}
			for _, l := range Levels() {
				byDay[day][choices.At(l)] = true
			}
		}
	}
	return byDay
}

// StudentDay identifies a single allocation slot: one student on one day.
type StudentDay struct {
	Student string
	Day     string
}

// Assignments maps committed slots to activity names. At most one entry per
// (student, day); the first commitment wins and is never overwritten.
type Assignments map[StudentDay]string

// Counts tallies how many assignments landed on each preference level.
type Counts struct {
	First  int
	Second int
	Third  int
	Other  int
}

func (c *Counts) Add(l Level, matched bool) {
	if !matched {
		c.Other++
		return
	}
	switch l {
	case LevelFirst:
		c.First++
	case LevelSecond:
		c.Second++
	case LevelThird:
		c.Third++
	}
}

func (c Counts) Total() int {
	return c.First + c.Second + c.Third + c.Other
}

// UnassignedRecord is a (student, day) slot that ended the run without an
// assignment, with its original choices preserved for reporting.
type UnassignedRecord struct {
	Student string
	Day     string
	Tier    Tier
	Choices Choices
}

// Summary is the satisfaction aggregator's output.
type Summary struct {
	Overall       Counts
	PerTier       map[Tier]Counts
	Unassigned    []UnassignedRecord
	TotalAssigned int
}
