package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Days:            []string{"mon", "tue", "wed", "thu"},
		DefaultCapacity: 15,
		CapacityOverrides: []CapacityOverride{
			{Activity: "soccer", Day: "mon", Capacity: 20},
			{Activity: "pottery", Capacity: 8},
		},
		TermStart:     "2025-01-06",
		ScheduleRRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH",
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingDays(t *testing.T) {
	cfg := &Config{DefaultCapacity: 15}
	assert.Error(t, Validate(cfg))
}

func TestValidate_OverrideDayNotConfigured(t *testing.T) {
	cfg := &Config{
		Days:            []string{"mon", "tue"},
		DefaultCapacity: 15,
		CapacityOverrides: []CapacityOverride{
			{Activity: "soccer", Day: "sat", Capacity: 20},
		},
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sat")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		Days:            []string{"mon"},
		DefaultCapacity: 15,
		TermStart:       "2025-01-06",
		ScheduleRRule:   "FREQ=NOPE",
	}
	assert.Error(t, Validate(cfg))
}

func TestValidate_TermStartWithoutRRule(t *testing.T) {
	cfg := &Config{
		Days:            []string{"mon"},
		DefaultCapacity: 15,
		TermStart:       "2025-01-06",
	}
	assert.Error(t, Validate(cfg))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, []string{"mon", "tue", "wed", "thu"}, cfg.Days)
	assert.Equal(t, 15, cfg.DefaultCapacity)
}

func TestLoadFromPath(t *testing.T) {
	content := `days: [mon, tue]
defaultCapacity: 10
capacityOverrides:
  - activity: soccer
    day: mon
    capacity: 25
`
	path := filepath.Join(t.TempDir(), "activity_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mon", "tue"}, cfg.Days)
	assert.Equal(t, 10, cfg.DefaultCapacity)
	assert.Equal(t, 25, cfg.CapacityFor("mon", "soccer"))
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCapacityFor_MostSpecificWins(t *testing.T) {
	cfg := &Config{
		Days:            []string{"mon", "tue"},
		DefaultCapacity: 15,
		CapacityOverrides: []CapacityOverride{
			{Activity: "soccer", Capacity: 30},
			{Activity: "soccer", Day: "mon", Capacity: 20},
			{Activity: "pottery", Capacity: 8},
		},
	}

	assert.Equal(t, 20, cfg.CapacityFor("mon", "soccer"))
	assert.Equal(t, 30, cfg.CapacityFor("tue", "soccer"))
	assert.Equal(t, 8, cfg.CapacityFor("mon", "pottery"))
	assert.Equal(t, 15, cfg.CapacityFor("mon", "chess"))
}

func TestSessionDates(t *testing.T) {
	cfg := &Config{
		Days:            []string{"mon", "tue", "wed", "thu"},
		DefaultCapacity: 15,
		TermStart:       "2025-01-06", // a Monday
		ScheduleRRule:   "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH",
	}
	require.NoError(t, Validate(cfg))

	dates, err := cfg.SessionDates()
	require.NoError(t, err)
	require.Len(t, dates, 4)
	assert.Equal(t, time.Monday, dates["mon"].Weekday())
	assert.Equal(t, time.Tuesday, dates["tue"].Weekday())
	assert.Equal(t, time.Thursday, dates["thu"].Weekday())
	assert.Equal(t, 6, dates["mon"].Day())
}

func TestSessionDates_NoSchedule(t *testing.T) {
	dates, err := Default().SessionDates()
	require.NoError(t, err)
	assert.Nil(t, dates)
}
