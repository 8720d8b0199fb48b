package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/pkg/postgres"
)

// RunsCmd creates the runs command: past allocation runs from the store.
func RunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past allocation runs from the run-history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			app.Logger.Debug("runs command", zap.Int("limit", limit))

			if app.Cfg.StoreDSN == "" {
				return fmt.Errorf("runs requires storeDSN in the config file")
			}

			db, err := postgres.NewDB(app.Ctx, app.Cfg.StoreDSN)
			if err != nil {
				return fmt.Errorf("failed to connect to store: %w", err)
			}
			defer db.Close()
			if err := db.RunMigrations(app.Ctx); err != nil {
				return fmt.Errorf("failed to run store migrations: %w", err)
			}

			runs, err := db.ListRuns(app.Ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("\nNo runs recorded yet.")
				return nil
			}

			fmt.Printf("\n%s%-36s  %-19s  %-24s  %-8s  %-8s  %s%s\n",
				colorBold, "Run ID", "Created", "Source", "Students", "Assigned", "Unassigned", colorReset)
			for _, r := range runs {
				fmt.Printf("%-36s  %-19s  %-24s  %-8d  %-8d  %d\n",
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.Source,
					r.StudentCount,
					r.AssignmentCount,
					r.UnassignedCount)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	return cmd
}
