// Package loader reads student preference CSVs into the core's data model.
// Malformed rows are skipped and reported, not fatal: a load succeeds as long
// as at least one valid row survives.
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
)

// row is the CSV record shape. Column names match the preference export
// format: student_id, priority, day and the three ranked preferences.
type row struct {
	StudentID string `csv:"student_id"`
	Priority  string `csv:"priority"`
	Day       string `csv:"day"`
	First     string `csv:"1st_preference"`
	Second    string `csv:"2nd_preference"`
	Third     string `csv:"3rd_preference"`
}

// RowError describes one skipped input row.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// Report summarises a load: how many rows bound cleanly, how many were
// skipped and why.
type Report struct {
	Loaded    int
	Skipped   int
	Students  int
	RowErrors []RowError
}

// Load reads the preference CSV at path. Rows naming a day outside
// validDays, missing required fields, or carrying an unknown priority are
// skipped and recorded in the report. A missing priority defaults to medium.
// A later row for the same (student, day) replaces the earlier one.
//
// Returns an error if the file cannot be read or no valid rows remain.
func Load(path string, validDays []string) (model.PreferenceSet, *Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open preferences file: %w", err)
	}
	defer f.Close()

	var rows []row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse preferences file: %w", err)
	}

	daySet := make(map[string]bool, len(validDays))
	for _, day := range validDays {
		daySet[strings.ToLower(day)] = true
	}

	set := make(model.PreferenceSet)
	report := &Report{}

	for i, r := range rows {
		line := i + 2 // header is line 1
		if reason := validateRow(r, daySet); reason != "" {
			report.Skipped++
			report.RowErrors = append(report.RowErrors, RowError{Line: line, Reason: reason})
			continue
		}

		tier, err := model.ParseTier(strings.ToLower(strings.TrimSpace(r.Priority)))
		if err != nil {
			report.Skipped++
			report.RowErrors = append(report.RowErrors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		student := strings.TrimSpace(r.StudentID)
		day := strings.ToLower(strings.TrimSpace(r.Day))

		prefs, ok := set[student]
		if !ok {
			prefs = &model.StudentPrefs{Tier: tier, Days: make(map[string]model.Choices)}
			set[student] = prefs
		}
		prefs.Days[day] = model.Choices{
			First:  strings.TrimSpace(r.First),
			Second: strings.TrimSpace(r.Second),
			Third:  strings.TrimSpace(r.Third),
		}
		report.Loaded++
	}

	report.Students = len(set)
	if report.Loaded == 0 {
		return nil, report, fmt.Errorf("no valid preference rows in %s (%d skipped)", path, report.Skipped)
	}
	return set, report, nil
}

func validateRow(r row, daySet map[string]bool) string {
	if strings.TrimSpace(r.StudentID) == "" {
		return "missing student_id"
	}
	day := strings.ToLower(strings.TrimSpace(r.Day))
	if day == "" {
		return "missing day"
	}
	if !daySet[day] {
		return fmt.Sprintf("unknown day %q", day)
	}
	if strings.TrimSpace(r.First) == "" || strings.TrimSpace(r.Second) == "" || strings.TrimSpace(r.Third) == "" {
		return "missing preference"
	}
	return ""
}
