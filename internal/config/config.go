package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const configFileName = "activity_config.yaml"

// CapacityOverride raises or lowers the seat count for one activity, either
// on a single day or (when Day is empty) on every day.
type CapacityOverride struct {
	Activity string `yaml:"activity" validate:"required"`
	Day      string `yaml:"day,omitempty"`
	Capacity int    `yaml:"capacity" validate:"required,min=1"`
}

// Config represents the application configuration
type Config struct {
	// Days is the ordered list of valid day labels students may name.
	Days []string `yaml:"days" validate:"required,min=1,dive,required"`

	// DefaultCapacity is the seat count per activity per day unless overridden.
	DefaultCapacity int `yaml:"defaultCapacity" validate:"required,min=1"`

	CapacityOverrides []CapacityOverride `yaml:"capacityOverrides,omitempty" validate:"dive"`

	// TermStart and ScheduleRRule optionally expand the abstract day labels
	// into concrete session dates: the i-th occurrence of the rule on or
	// after TermStart is the date of Days[i].
	TermStart     string `yaml:"termStart,omitempty"`
	ScheduleRRule string `yaml:"scheduleRRule,omitempty"`

	// StoreDSN enables the Postgres run-history store when set.
	StoreDSN string `yaml:"storeDSN,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the built-in configuration used when no config file exists:
// the four-day week with fifteen seats per activity-day.
func Default() *Config {
	return &Config{
		Days:            []string{"mon", "tue", "wed", "thu"},
		DefaultCapacity: 15,
	}
}

// Load loads and validates the configuration from activity_config.yaml,
// looking in the current directory first, then in the user's home directory.
// Falls back to Default when no file is found.
func Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and its semantic constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.CapacityOverrides {
		if override.Day != "" && !cfg.HasDay(override.Day) {
			return fmt.Errorf("capacityOverrides[%d]: day %q is not in days", i, override.Day)
		}
	}

	if (cfg.TermStart == "") != (cfg.ScheduleRRule == "") {
		return fmt.Errorf("termStart and scheduleRRule must be set together")
	}
	if cfg.ScheduleRRule != "" {
		if _, err := time.Parse("2006-01-02", cfg.TermStart); err != nil {
			return fmt.Errorf("invalid termStart: %w", err)
		}
		if _, err := rrule.StrToRRule(cfg.ScheduleRRule); err != nil {
			return fmt.Errorf("invalid scheduleRRule: %w", err)
		}
	}

	return nil
}

// HasDay reports whether the label names a configured day.
func (c *Config) HasDay(day string) bool {
	day = strings.ToLower(day)
	for _, d := range c.Days {
		if strings.ToLower(d) == day {
			return true
		}
	}
	return false
}

// CapacityFor resolves the seat count for one activity-day. The most
// specific override wins: activity+day, then activity on all days, then the
// default.
func (c *Config) CapacityFor(day, activity string) int {
	capacity := c.DefaultCapacity
	allDays := -1
	for _, o := range c.CapacityOverrides {
		if o.Activity != activity {
			continue
		}
		if o.Day == "" {
			allDays = o.Capacity
			continue
		}
		if strings.EqualFold(o.Day, day) {
			return o.Capacity
		}
	}
	if allDays >= 0 {
		return allDays
	}
	return capacity
}

// SessionDates expands TermStart + ScheduleRRule into a date per day label,
// matching rule occurrences to Days in order. Returns nil when no term
// schedule is configured.
func (c *Config) SessionDates() (map[string]time.Time, error) {
	if c.ScheduleRRule == "" {
		return nil, nil
	}

	start, err := time.Parse("2006-01-02", c.TermStart)
	if err != nil {
		return nil, fmt.Errorf("invalid termStart: %w", err)
	}
	rule, err := rrule.StrToRRule(c.ScheduleRRule)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduleRRule: %w", err)
	}
	rule.DTStart(start)

	// A four-week window is ample for one occurrence per configured day.
	occurrences := rule.Between(start, start.AddDate(0, 0, 28), true)
	if len(occurrences) < len(c.Days) {
		return nil, fmt.Errorf("scheduleRRule yields %d dates in the first four weeks, need %d", len(occurrences), len(c.Days))
	}

	dates := make(map[string]time.Time, len(c.Days))
	for i, day := range c.Days {
		dates[day] = occurrences[i]
	}
	return dates, nil
}

// findConfigFile searches for activity_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
