package main

import (
	"context"
	"errors"
	"fmt"

	"floorlog/internal/blob"
	"floorlog/internal/store"
	"floorlog/internal/tabular"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	switch {
	case errors.Is(err, blob.ErrForbidden):
		lines = append(lines, "hint: verify FLOORLOG_TOKEN grants write access to the configured repository.")
	case errors.Is(err, blob.ErrConflict):
		lines = append(lines,
			"hint: another session updated the same table; re-read the current state and retry.")
	case errors.Is(err, blob.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		lines = append(lines,
			"hint: could not reach the remote store; retry shortly or increase FLOORLOG_HTTP_TIMEOUT.")
	case errors.Is(err, tabular.ErrMalformedData):
		lines = append(lines,
			"hint: the stored table could not be decoded; inspect the raw file before writing again.")
	case errors.Is(err, store.ErrConfirmationMismatch):
		lines = append(lines,
			fmt.Sprintf("hint: pass --confirm %q to clear all records.", store.ClearConfirmation))
	}

	return lines
}
