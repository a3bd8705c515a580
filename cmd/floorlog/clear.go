package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"floorlog/internal/config"
	"floorlog/internal/store"
)

func newClearCmd(cfg *config.Config) *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Permanently delete all status records",
		Long: fmt.Sprintf(`Permanently delete every status record. This cannot be undone.

The operation only runs when --confirm is exactly %q; the typed phrase
is the confirmation, there is no interactive prompt.`, store.ClearConfirmation),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st store.Store) error {
				version, err := st.ClearRecords(cmd.Context(), confirm)
				if err != nil {
					return err
				}
				return writePlain("all records cleared (version %s)\n", version)
			})
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", fmt.Sprintf("type %q to confirm", store.ClearConfirmation))
	return cmd
}
