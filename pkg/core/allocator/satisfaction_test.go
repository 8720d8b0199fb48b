package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

func TestSummarize_ClassifiesLevels(t *testing.T) {
	set := model.PreferenceSet{
		"S1": {Tier: model.TierHigh, Days: map[string]model.Choices{
			"mon": {First: "soccer", Second: "chess", Third: "art"},
			"tue": {First: "swim", Second: "chess", Third: "art"},
		}},
		"S2": {Tier: model.TierMedium, Days: map[string]model.Choices{
			"mon": {First: "soccer", Second: "art", Third: "chess"},
		}},
	}
	assignments := model.Assignments{
		{Student: "S1", Day: "mon"}: "soccer", // 1st
		{Student: "S1", Day: "tue"}: "chess",  // 2nd
		{Student: "S2", Day: "mon"}: "chess",  // 3rd
	}

	summary := Summarize(set, assignments)

	assert.Equal(t, 1, summary.Overall.First)
	assert.Equal(t, 1, summary.Overall.Second)
	assert.Equal(t, 1, summary.Overall.Third)
	assert.Zero(t, summary.Overall.Other)
	assert.Equal(t, 3, summary.TotalAssigned)

	assert.Equal(t, model.Counts{First: 1, Second: 1}, summary.PerTier[model.TierHigh])
	assert.Equal(t, model.Counts{Third: 1}, summary.PerTier[model.TierMedium])
	assert.Empty(t, summary.Unassigned)
}

func TestSummarize_DefensiveOtherBucket(t *testing.T) {
	// An activity outside the ranked list can only come from a broken
	// builder or allocator; the aggregator still counts it rather than
	// dropping it.
	set := model.PreferenceSet{
		"S1": {Tier: model.TierLow, Days: map[string]model.Choices{
			"mon": {First: "soccer", Second: "chess", Third: "art"},
		}},
	}
	assignments := model.Assignments{
		{Student: "S1", Day: "mon"}: "karate",
	}

	summary := Summarize(set, assignments)

	assert.Equal(t, 1, summary.Overall.Other)
	assert.Equal(t, model.Counts{Other: 1}, summary.PerTier[model.TierLow])
}

func TestSummarize_UnassignedKeepsOriginalChoices(t *testing.T) {
	set := model.PreferenceSet{
		"S1": {Tier: model.TierMedium, Days: map[string]model.Choices{
			"mon": {First: "soccer", Second: "chess", Third: "art"},
			"tue": {First: "swim", Second: "chess", Third: "art"},
		}},
	}
	assignments := model.Assignments{
		{Student: "S1", Day: "mon"}: "soccer",
	}

	summary := Summarize(set, assignments)

	require.Len(t, summary.Unassigned, 1)
	u := summary.Unassigned[0]
	assert.Equal(t, "S1", u.Student)
	assert.Equal(t, "tue", u.Day)
	assert.Equal(t, model.TierMedium, u.Tier)
	assert.Equal(t, model.Choices{First: "swim", Second: "chess", Third: "art"}, u.Choices)
}

func TestSummarize_DuplicateChoiceCountsLowestLevel(t *testing.T) {
	set := model.PreferenceSet{
		"S1": {Tier: model.TierHigh, Days: map[string]model.Choices{
			"mon": {First: "soccer", Second: "soccer", Third: "art"},
		}},
	}
	assignments := model.Assignments{
		{Student: "S1", Day: "mon"}: "soccer",
	}

	summary := Summarize(set, assignments)

	assert.Equal(t, 1, summary.Overall.First)
	assert.Zero(t, summary.Overall.Second)
}

func TestSummarize_EmptyInputs(t *testing.T) {
	summary := Summarize(model.PreferenceSet{}, model.Assignments{})
	assert.Zero(t, summary.TotalAssigned)
	assert.Empty(t, summary.Unassigned)
	assert.Zero(t, summary.Overall.Total())
}
