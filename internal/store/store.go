// Package store persists the machine-status record table and the machine
// roster. Two implementations share one contract: Remote round-trips whole
// versioned blobs through a blob.Client, Local keeps the same tables in a
// single-writer SQLite file. Selection happens once at startup.
package store

import (
	"context"
	"errors"

	"floorlog/internal/models"
)

// ClearConfirmation is the exact phrase a caller must supply to wipe the
// record table. The caller layer collects it from the operator.
const ClearConfirmation = "clear all records"

// ErrConfirmationMismatch means ClearRecords was called with the wrong
// confirmation phrase. State is untouched.
var ErrConfirmationMismatch = errors.New("confirmation phrase does not match")

// Store is the caller-facing persistence contract.
//
// Append is at-least-once, last-writer-reconciled: an append that returns
// success corresponds to exactly one record in the committed table, and an
// append that returns an error has not applied at all.
type Store interface {
	// ListRecords returns every stored record in insertion order. A table
	// that has never been written reads as empty, not as an error.
	ListRecords(ctx context.Context) ([]models.StatusRecord, error)

	// Append adds one record and returns the resulting record set after
	// commit.
	Append(ctx context.Context, record models.StatusRecord) ([]models.StatusRecord, error)

	// ListRoster returns the current machine roster.
	ListRoster(ctx context.Context) ([]models.RosterEntry, error)

	// ReplaceRoster replaces the roster wholesale and returns the new
	// version token. A concurrent edit surfaces as a conflict for the
	// caller to re-resolve; it is never force-overwritten.
	ReplaceRoster(ctx context.Context, entries []models.RosterEntry) (string, error)

	// ClearRecords replaces the record table with an empty one. The
	// confirmation must equal ClearConfirmation or nothing happens.
	ClearRecords(ctx context.Context, confirmation string) (string, error)

	// Close releases any underlying resources.
	Close() error
}

func checkClearConfirmation(confirmation string) error {
	if confirmation != ClearConfirmation {
		return ErrConfirmationMismatch
	}
	return nil
}
