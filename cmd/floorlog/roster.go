package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"floorlog/internal/config"
	"floorlog/internal/models"
	"floorlog/internal/store"
)

func newRosterCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show or edit the machine roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st store.Store) error {
				entries, err := st.ListRoster(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(entries)
				}
				return writeRosterList(entries)
			})
		},
	}

	cmd.AddCommand(newRosterEditCmd(cfg), newRosterExportCmd(cfg))
	return cmd
}

func newRosterEditCmd(cfg *config.Config) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the roster from a YAML file",
		Long: `Replace the whole machine roster with the entries in a YAML file.

The file is a list of entries:

  - machine: M1
    spec: lathe
    note: north bay

The previous roster is discarded. A concurrent edit is reported as a
conflict; re-export, merge, and edit again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("--file is required")
			}
			entries, err := readRosterFile(filePath)
			if err != nil {
				return err
			}

			return withStore(cfg, func(st store.Store) error {
				version, err := st.ReplaceRoster(cmd.Context(), entries)
				if err != nil {
					return err
				}
				return writePlain("roster replaced: %d entries (version %s)\n", len(entries), version)
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "YAML roster file")
	return cmd
}

func newRosterExportCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the roster as YAML suitable for editing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st store.Store) error {
				entries, err := st.ListRoster(cmd.Context())
				if err != nil {
					return err
				}
				out, err := yaml.Marshal(entries)
				if err != nil {
					return err
				}
				return writePlain("%s", out)
			})
		},
	}
}

func readRosterFile(path string) ([]models.RosterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []models.RosterEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, entry := range entries {
		if entry.Machine == "" {
			return nil, fmt.Errorf("%s: entry %d has no machine", path, i+1)
		}
	}
	return entries, nil
}
