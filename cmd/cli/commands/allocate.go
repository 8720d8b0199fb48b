package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/pkg/core/allocator"
	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
	"github.com/fillorkill/ActivityAllocation/pkg/core/services"
	"github.com/fillorkill/ActivityAllocation/pkg/loader"
	"github.com/fillorkill/ActivityAllocation/pkg/postgres"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <preferences.csv>",
		Short: "Allocate students to activities from a preferences CSV",
		Long:  "Run the tiered allocation algorithm over the preference file and report assignments, satisfaction and unassigned students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			store, _ := cmd.Flags().GetBool("store")

			app.Logger.Debug("allocate command",
				zap.String("csv", csvPath),
				zap.Bool("dry_run", dryRun),
				zap.Bool("store", store))

			set, report, err := loader.Load(csvPath, app.Cfg.Days)
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}
			app.Logger.Info("Preferences loaded",
				zap.Int("students", report.Students),
				zap.Int("rows", report.Loaded),
				zap.Int("skipped", report.Skipped))

			opts := services.AllocateOptions{Source: csvPath, DryRun: dryRun}

			if store {
				if app.Cfg.StoreDSN == "" {
					return fmt.Errorf("--store requires storeDSN in the config file")
				}
				db, err := postgres.NewDB(app.Ctx, app.Cfg.StoreDSN)
				if err != nil {
					return fmt.Errorf("failed to connect to store: %w", err)
				}
				defer db.Close()
				if err := db.RunMigrations(app.Ctx); err != nil {
					return fmt.Errorf("failed to run store migrations: %w", err)
				}
				opts.Store = db
			}

			result, err := services.AllocateActivities(app.Ctx, set, app.Cfg, app.Logger, opts)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			renderResult(result, set, report, dryRun)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to the run-history store")
	cmd.Flags().Bool("store", false, "Save the run to the configured Postgres store")

	return cmd
}

func renderResult(result *services.AllocationResult, set model.PreferenceSet, report *loader.Report, dryRun bool) {
	fmt.Printf("\n🎯 Activity Allocation Results\n\n")
	fmt.Printf("Run ID:      %s\n", result.RunID)
	fmt.Printf("Students:    %d (%d preference records, %d rows skipped)\n",
		report.Students, report.Loaded, report.Skipped)
	fmt.Printf("Assigned:    %d\n", result.Summary.TotalAssigned)
	fmt.Printf("Unassigned:  %d\n", len(result.Summary.Unassigned))
	if result.FailedPasses > 0 {
		fmt.Printf("Status:      ⚠️  %d pass(es) failed, results are partial\n", result.FailedPasses)
	}
	if dryRun {
		fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
	} else if result.Stored {
		fmt.Printf("Mode:        ✅ saved to run-history store\n")
	}
	fmt.Println()

	renderAssignmentTable(result, set)
	renderParticipation(result)
	renderSatisfaction(result.Summary)
	renderUnassigned(result.Summary.Unassigned)
}

func renderAssignmentTable(result *services.AllocationResult, set model.PreferenceSet) {
	fmt.Printf("📅 Assignments:\n\n")

	studentColWidth := len("Student")
	activityColWidth := len("Assigned")
	for slot, activity := range result.Assignments {
		if len(slot.Student) > studentColWidth {
			studentColWidth = len(slot.Student)
		}
		if len(activity) > activityColWidth {
			activityColWidth = len(activity)
		}
	}

	fmt.Printf("%s%-*s  %-8s  %-6s  %-*s  %-4s  %s%s\n",
		colorBold,
		studentColWidth, "Student", "Tier", "Day",
		activityColWidth, "Assigned", "Was", "Preferences",
		colorReset)
	fmt.Printf("%s  %s  %s  %s  %s  %s\n",
		strings.Repeat("-", studentColWidth),
		strings.Repeat("-", 8),
		strings.Repeat("-", 6),
		strings.Repeat("-", activityColWidth),
		strings.Repeat("-", 4),
		strings.Repeat("-", 30))

	for _, tier := range model.Tiers() {
		for _, student := range set.StudentIDs() {
			prefs := set[student]
			if prefs.Tier != tier {
				continue
			}

			days := make([]string, 0, len(prefs.Days))
			for day := range prefs.Days {
				days = append(days, day)
			}
			sort.Strings(days)

			for _, day := range days {
				activity, ok := result.Assignments[model.StudentDay{Student: student, Day: day}]
				if !ok {
					continue
				}
				choices := prefs.Days[day]

				was := "other"
				if level, matched := choices.LevelOf(activity); matched {
					was = level.Label()
				}
				if was == "1st" {
					was = colorGreen + was + colorReset + " "
				}

				fmt.Printf("%-*s  %-8s  %-6s  %-*s  %-4s  1:%s, 2:%s, 3:%s\n",
					studentColWidth, student,
					string(prefs.Tier), day,
					activityColWidth, activity,
					was,
					choices.First, choices.Second, choices.Third)
			}
		}
	}
	fmt.Println()
}

func renderParticipation(result *services.AllocationResult) {
	fmt.Printf("📊 Activity Participation Counts:\n\n")

	keys := make([]allocator.ActivityDay, 0, len(result.Usage))
	for key := range result.Usage {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Activity < keys[j].Activity
	})

	for _, key := range keys {
		date := ""
		if d, ok := result.SessionDates[key.Day]; ok {
			date = " (" + d.Format("2006-01-02") + ")"
		}
		fmt.Printf("  %-6s%s  %-30s %d\n", key.Day, date, key.Activity, result.Usage[key])
	}
	fmt.Println()
}

func renderSatisfaction(summary model.Summary) {
	fmt.Printf("⭐ Overall Preference Satisfaction:\n")
	printCounts(summary.Overall, "  ")
	fmt.Println()

	fmt.Printf("Preference Satisfaction by Tier:\n")
	for _, tier := range model.Tiers() {
		counts, ok := summary.PerTier[tier]
		if !ok || counts.Total() == 0 {
			continue
		}
		fmt.Printf("\n  %s tier:\n", tier)
		printCounts(counts, "    ")
	}
	fmt.Println()
}

func printCounts(counts model.Counts, indent string) {
	total := counts.Total()
	if total == 0 {
		return
	}
	fmt.Printf("%s1st choice:   %d (%.2f%%)\n", indent, counts.First, percent(counts.First, total))
	fmt.Printf("%s2nd choice:   %d (%.2f%%)\n", indent, counts.Second, percent(counts.Second, total))
	fmt.Printf("%s3rd choice:   %d (%.2f%%)\n", indent, counts.Third, percent(counts.Third, total))
	if counts.Other > 0 {
		fmt.Printf("%sother:        %d (%.2f%%)\n", indent, counts.Other, percent(counts.Other, total))
	}
	fmt.Printf("%stotal:        %d\n", indent, total)
}

func percent(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

func renderUnassigned(unassigned []model.UnassignedRecord) {
	if len(unassigned) == 0 {
		return
	}

	fmt.Printf("%s⚠️  Unassigned (%d):%s\n", colorYellow, len(unassigned), colorReset)
	for _, u := range unassigned {
		fmt.Printf("  • %s (%s) on %s: 1:%s, 2:%s, 3:%s\n",
			u.Student, u.Tier, u.Day,
			u.Choices.First, u.Choices.Second, u.Choices.Third)
	}
	fmt.Println()
}
