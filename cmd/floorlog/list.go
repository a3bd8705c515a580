package main

import (
	"sort"

	"github.com/spf13/cobra"

	"floorlog/internal/config"
	"floorlog/internal/models"
	"floorlog/internal/store"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		machine    string
		statusText string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded status events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st store.Store) error {
				records, err := st.ListRecords(cmd.Context())
				if err != nil {
					return err
				}

				records = filterRecords(records, machine, statusText)
				sortNewestFirst(records)
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}

				if *jsonOutput {
					return writeJSON(records)
				}
				return writeRecordList(records)
			})
		},
	}

	cmd.Flags().StringVarP(&machine, "machine", "m", "", "machine filter")
	cmd.Flags().StringVarP(&statusText, "status", "s", "", "description filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit results")

	return cmd
}

func filterRecords(records []models.StatusRecord, machine, description string) []models.StatusRecord {
	if machine == "" && description == "" {
		return records
	}
	out := make([]models.StatusRecord, 0, len(records))
	for _, record := range records {
		if machine != "" && record.Machine != machine {
			continue
		}
		if description != "" && record.Description != description {
			continue
		}
		out = append(out, record)
	}
	return out
}

// sortNewestFirst orders for display. Stored order is insertion order, not
// necessarily sorted by timestamp, so viewers sort defensively.
func sortNewestFirst(records []models.StatusRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}
