package main

import (
	"github.com/spf13/cobra"

	"floorlog/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "floorlog",
		Short: "Floorlog records and views machine status events for a factory floor",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				cmd.PrintErrln(warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRecordCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newStatusCmd(cfg, &jsonOutput),
		newRosterCmd(cfg, &jsonOutput),
		newClearCmd(cfg),
		newConfigCmd(cfg),
	)

	return cmd
}
