package main

import (
	"sort"

	"github.com/spf13/cobra"

	"floorlog/internal/config"
	"floorlog/internal/models"
	"floorlog/internal/projection"
	"floorlog/internal/store"
)

type statusSummary struct {
	Machines int                            `json:"machines"`
	Running  int                            `json:"running"`
	Stopped  int                            `json:"stopped"`
	Errors   int                            `json:"errors"`
	Latest   map[string]models.StatusRecord `json:"latest"`
}

func newStatusCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the latest status per machine with state counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st store.Store) error {
				records, err := st.ListRecords(cmd.Context())
				if err != nil {
					return err
				}

				summary := summarize(records)
				if *jsonOutput {
					return writeJSON(summary)
				}
				return writeStatusSummary(summary)
			})
		},
	}
}

// summarize mirrors the dashboard metric row: total machines plus counters
// over the latest state of each machine.
func summarize(records []models.StatusRecord) statusSummary {
	latest := projection.LatestPerMachine(records)

	current := make([]models.StatusRecord, 0, len(latest))
	for _, record := range latest {
		current = append(current, record)
	}
	counts := projection.CountsByDescription(current)

	return statusSummary{
		Machines: len(latest),
		Running:  counts[models.StatusRunning],
		Stopped:  counts[models.StatusStopped],
		Errors:   counts[models.StatusError],
		Latest:   latest,
	}
}

func writeStatusSummary(summary statusSummary) error {
	if err := writePlain("machines: %d  running: %d  stopped: %d  error: %d\n",
		summary.Machines, summary.Running, summary.Stopped, summary.Errors); err != nil {
		return err
	}

	machines := make([]string, 0, len(summary.Latest))
	for machine := range summary.Latest {
		machines = append(machines, machine)
	}
	sort.Strings(machines)

	for _, machine := range machines {
		if err := writePlain("%s\n", formatRecordLine(summary.Latest[machine])); err != nil {
			return err
		}
	}
	return nil
}
