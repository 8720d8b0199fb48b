package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/pkg/core/model"
	"github.com/fillorkill/ActivityAllocation/pkg/loader"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <preferences.csv>",
		Short: "Check that a preferences CSV loads cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := args[0]
			app.Logger.Debug("validate command", zap.String("csv", csvPath))

			set, report, err := loader.Load(csvPath, app.Cfg.Days)
			if err != nil {
				if report != nil {
					printRowErrors(report)
				}
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Printf("\n✓ %s loaded\n\n", csvPath)
			fmt.Printf("Students:  %d\n", report.Students)
			fmt.Printf("Records:   %d\n", report.Loaded)
			fmt.Printf("Skipped:   %d\n", report.Skipped)

			tierCounts := make(map[model.Tier]int)
			for _, student := range set.StudentIDs() {
				tierCounts[set[student].Tier]++
			}
			fmt.Printf("\nStudent priority distribution:\n")
			for _, tier := range model.Tiers() {
				fmt.Printf("  %-8s %d\n", tier, tierCounts[tier])
			}

			printRowErrors(report)
			return nil
		},
	}
}

func printRowErrors(report *loader.Report) {
	if len(report.RowErrors) == 0 {
		return
	}
	fmt.Printf("\n%s⚠️  Skipped rows (%d):%s\n", colorYellow, len(report.RowErrors), colorReset)
	for _, re := range report.RowErrors {
		fmt.Printf("  • %s\n", re.Error())
	}
	fmt.Println()
}
