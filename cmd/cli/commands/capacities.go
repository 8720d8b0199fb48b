package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/pkg/loader"
)

// CapacitiesCmd creates the capacities command: first-choice demand against
// configured seats per activity-day, before any allocation runs.
func CapacitiesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "capacities <preferences.csv>",
		Short: "Show first-choice demand vs configured capacity per activity-day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := args[0]
			app.Logger.Debug("capacities command", zap.String("csv", csvPath))

			set, _, err := loader.Load(csvPath, app.Cfg.Days)
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}

			type key struct{ day, activity string }
			demand := make(map[key]int)
			for _, student := range set.StudentIDs() {
				for day, choices := range set[student].Days {
					demand[key{day, choices.First}]++
				}
			}

			keys := make([]key, 0, len(demand))
			for k := range demand {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool {
				if keys[i].day != keys[j].day {
					return keys[i].day < keys[j].day
				}
				return keys[i].activity < keys[j].activity
			})

			fmt.Printf("\n%s%-6s  %-30s  %-7s  %-5s%s\n", colorBold, "Day", "Activity", "Demand", "Seats", colorReset)
			oversubscribed := 0
			for _, k := range keys {
				seats := app.Cfg.CapacityFor(k.day, k.activity)
				line := fmt.Sprintf("%-6s  %-30s  %-7d  %-5d", k.day, k.activity, demand[k], seats)
				if demand[k] > seats {
					line = colorYellow + line + "  ← oversubscribed" + colorReset
					oversubscribed++
				}
				fmt.Println(line)
			}
			fmt.Println()
			if oversubscribed > 0 {
				fmt.Printf("%d activity-day(s) have more first-choice demand than seats; "+
					"some students will fall through to lower choices.\n\n", oversubscribed)
			}
			return nil
		},
	}
}
