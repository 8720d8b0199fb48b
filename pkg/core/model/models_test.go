package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("high")
	require.NoError(t, err)
	assert.Equal(t, TierHigh, tier)

	// Missing priority defaults to medium
	tier, err = ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierMedium, tier)

	_, err = ParseTier("urgent")
	assert.Error(t, err)
}

func TestTiers_ProcessingOrder(t *testing.T) {
	assert.Equal(t, []Tier{TierHigh, TierMedium, TierLow}, Tiers())
}

func TestChoices_At(t *testing.T) {
	c := Choices{First: "soccer", Second: "chess", Third: "art"}
	assert.Equal(t, "soccer", c.At(LevelFirst))
	assert.Equal(t, "chess", c.At(LevelSecond))
	assert.Equal(t, "art", c.At(LevelThird))
}

func TestChoices_LevelOf(t *testing.T) {
	c := Choices{First: "soccer", Second: "chess", Third: "art"}

	level, ok := c.LevelOf("chess")
	require.True(t, ok)
	assert.Equal(t, LevelSecond, level)

	_, ok = c.LevelOf("karate")
	assert.False(t, ok)
}

func TestChoices_LevelOfDuplicatesLowestWins(t *testing.T) {
	c := Choices{First: "soccer", Second: "soccer", Third: "soccer"}
	level, ok := c.LevelOf("soccer")
	require.True(t, ok)
	assert.Equal(t, LevelFirst, level)
}

func TestLevelLabels(t *testing.T) {
	assert.Equal(t, "1st", LevelFirst.Label())
	assert.Equal(t, "2nd", LevelSecond.Label())
	assert.Equal(t, "3rd", LevelThird.Label())
}

func TestPreferenceSet_ByTier(t *testing.T) {
	set := PreferenceSet{
		"S1": {Tier: TierHigh, Days: map[string]Choices{"mon": {First: "a", Second: "b", Third: "c"}}},
		"S2": {Tier: TierLow, Days: map[string]Choices{"mon": {First: "a", Second: "b", Third: "c"}}},
		"S3": {Tier: TierHigh, Days: map[string]Choices{"tue": {First: "a", Second: "b", Third: "c"}}},
	}

	high := set.ByTier(TierHigh)
	assert.Equal(t, []string{"S1", "S3"}, high.StudentIDs())
	assert.Empty(t, set.ByTier(TierMedium))
}

func TestPreferenceSet_RecordCount(t *testing.T) {
	set := PreferenceSet{
		"S1": {Tier: TierHigh, Days: map[string]Choices{
			"mon": {First: "a", Second: "b", Third: "c"},
			"tue": {First: "a", Second: "b", Third: "c"},
		}},
		"S2": {Tier: TierLow, Days: map[string]Choices{}},
	}
	assert.Equal(t, 2, set.RecordCount())
}

func TestPreferenceSet_ActivitiesByDay(t *testing.T) {
	set := PreferenceSet{
		"S1": {Tier: TierHigh, Days: map[string]Choices{
			"mon": {First: "soccer", Second: "chess", Third: "soccer"},
		}},
		"S2": {Tier: TierLow, Days: map[string]Choices{
			"mon": {First: "art", Second: "chess", Third: "swim"},
		}},
	}

	byDay := set.ActivitiesByDay()
	require.Contains(t, byDay, "mon")
	assert.Len(t, byDay["mon"], 4)
	assert.True(t, byDay["mon"]["soccer"])
	assert.True(t, byDay["mon"]["swim"])
}

func TestCounts_Add(t *testing.T) {
	var c Counts
	c.Add(LevelFirst, true)
	c.Add(LevelThird, true)
	c.Add(0, false)

	assert.Equal(t, Counts{First: 1, Third: 1, Other: 1}, c)
	assert.Equal(t, 3, c.Total())
}
