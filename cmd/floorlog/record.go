package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"floorlog/internal/config"
	"floorlog/internal/models"
	"floorlog/internal/store"
)

func newRecordCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "record <machine> <description...>",
		Short: "Record the current status of a machine",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := buildRecord(args, at)
			if err != nil {
				return err
			}

			return withStore(cfg, func(st store.Store) error {
				records, err := st.Append(cmd.Context(), record)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(record)
				}
				return writePlain("recorded: %s (%d records)\n", formatRecordLine(record), len(records))
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "record timestamp (YYYY-MM-DD HH:MM:SS, default now)")
	return cmd
}

func buildRecord(args []string, at string) (models.StatusRecord, error) {
	machine := strings.TrimSpace(args[0])
	if machine == "" {
		return models.StatusRecord{}, errors.New("machine is required")
	}

	// Free-form text is stored verbatim; "running", "stopped" and "error"
	// are only a convention the status view aggregates on.
	description := strings.TrimSpace(strings.Join(args[1:], " "))
	if description == "" {
		return models.StatusRecord{}, errors.New("description is required")
	}

	timestamp := time.Now().Truncate(time.Second)
	if at != "" {
		parsed, err := models.ParseTimestamp(at)
		if err != nil {
			return models.StatusRecord{}, err
		}
		timestamp = parsed
	}

	return models.StatusRecord{
		Timestamp:   timestamp,
		Machine:     machine,
		Description: description,
	}, nil
}
