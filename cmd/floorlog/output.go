package main

import (
	"fmt"
	"os"

	"floorlog/internal/format"
	"floorlog/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeRecordList(records []models.StatusRecord) error {
	for _, record := range records {
		if err := writePlain("%s\n", formatRecordLine(record)); err != nil {
			return err
		}
	}
	return nil
}

func writeRosterList(entries []models.RosterEntry) error {
	for _, entry := range entries {
		line := entry.Machine
		if entry.Spec != "" {
			line += "  " + entry.Spec
		}
		if entry.Note != "" {
			line += "  (" + entry.Note + ")"
		}
		if err := writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func formatRecordLine(record models.StatusRecord) string {
	return fmt.Sprintf("%s  %s  %s",
		models.FormatTimestamp(record.Timestamp), record.Machine, record.Description)
}
