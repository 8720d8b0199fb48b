package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fillorkill/ActivityAllocation/cmd/cli/commands"
	"github.com/fillorkill/ActivityAllocation/internal/config"
	"github.com/fillorkill/ActivityAllocation/pkg/utils/logging"
)

var (
	configPath string
	verbose    bool
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "activity-alloc",
		Short: "Activity allocation CLI - assign students to activities",
		Long: `A CLI tool that assigns each student to at most one activity per day from
their ranked preferences, respecting per-activity seat capacities and strict
priority ordering between student tiers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: activity_config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output on the console")

	rootCmd.AddCommand(commands.AllocateCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.CapacitiesCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and configuration shared by all commands
func initApp() error {
	logger, err := logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded",
		zap.Strings("days", cfg.Days),
		zap.Int("default_capacity", cfg.DefaultCapacity))

	app.Cfg = cfg
	app.Logger = logger
	app.Ctx = context.Background()
	return nil
}
