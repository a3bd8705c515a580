package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"floorlog/internal/blob"
	"floorlog/internal/models"
	"floorlog/internal/tabular"
)

// maxWriteAttempts bounds the re-read/re-write loop for appends. Conflicts
// are expected to be rare (single-digit concurrent writers), so there is no
// backoff between attempts.
const maxWriteAttempts = 3

// Remote persists records and roster as whole versioned blobs. Every write
// re-reads the current blob, mutates it in memory, and writes it back
// conditionally on the version read; a stale version loses and is retried
// or surfaced, never silently overwritten.
type Remote struct {
	client      blob.Client
	recordsPath string
	rosterPath  string
}

// NewRemote creates a store over a blob client and the two well-known paths.
func NewRemote(client blob.Client, recordsPath, rosterPath string) *Remote {
	return &Remote{client: client, recordsPath: recordsPath, rosterPath: rosterPath}
}

// ListRecords reads and decodes the current record blob.
func (s *Remote) ListRecords(ctx context.Context) ([]models.StatusRecord, error) {
	records, _, err := s.loadRecords(ctx)
	return records, err
}

// Append adds one record, retrying against the latest committed state when a
// concurrent writer wins the version check. Both racing appends survive:
// each retry re-reads the other's committed records before re-appending.
func (s *Remote) Append(ctx context.Context, record models.StatusRecord) ([]models.StatusRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		records, version, err := s.loadRecords(ctx)
		if err != nil {
			if errors.Is(err, blob.ErrUnavailable) {
				lastErr = err
				continue
			}
			return nil, err
		}

		next := append(records, record)
		content, err := tabular.EncodeRecords(next)
		if err != nil {
			return nil, err
		}

		message := fmt.Sprintf("record %s status for %s", models.FormatTimestamp(record.Timestamp), record.Machine)
		if _, err := s.client.Put(ctx, s.recordsPath, content, version, message); err != nil {
			if errors.Is(err, blob.ErrConflict) || errors.Is(err, blob.ErrUnavailable) {
				slog.Debug("append write lost, retrying from current state",
					"path", s.recordsPath, "attempt", attempt, "error", err)
				lastErr = err
				continue
			}
			return nil, err
		}
		return next, nil
	}
	return nil, lastErr
}

// ListRoster reads and decodes the current roster blob.
func (s *Remote) ListRoster(ctx context.Context) ([]models.RosterEntry, error) {
	content, _, err := s.get(ctx, s.rosterPath)
	if err != nil {
		return nil, err
	}
	return tabular.DecodeRoster(content)
}

// ReplaceRoster writes the roster wholesale, conditionally on the version it
// just read. A conflict is surfaced for the caller to re-resolve from fresh
// state rather than retried, since a silent retry could discard the base
// the operator edited against.
func (s *Remote) ReplaceRoster(ctx context.Context, entries []models.RosterEntry) (string, error) {
	_, version, err := s.get(ctx, s.rosterPath)
	if err != nil {
		return "", err
	}
	content, err := tabular.EncodeRoster(entries)
	if err != nil {
		return "", err
	}
	return s.client.Put(ctx, s.rosterPath, content, version,
		fmt.Sprintf("replace machine roster (%d entries)", len(entries)))
}

// ClearRecords replaces the record table with an empty one, guarded by the
// confirmation phrase. Conflicts are surfaced, not retried.
func (s *Remote) ClearRecords(ctx context.Context, confirmation string) (string, error) {
	if err := checkClearConfirmation(confirmation); err != nil {
		return "", err
	}
	_, version, err := s.get(ctx, s.recordsPath)
	if err != nil {
		return "", err
	}
	content, err := tabular.EncodeRecords(nil)
	if err != nil {
		return "", err
	}
	return s.client.Put(ctx, s.recordsPath, content, version, "clear all status records")
}

// Close is a no-op; the blob client holds no local resources.
func (s *Remote) Close() error {
	return nil
}

func (s *Remote) loadRecords(ctx context.Context) ([]models.StatusRecord, string, error) {
	content, version, err := s.get(ctx, s.recordsPath)
	if err != nil {
		return nil, "", err
	}
	records, err := tabular.DecodeRecords(content)
	if err != nil {
		return nil, "", err
	}
	return records, version, nil
}

// get fetches a blob, treating a never-written path as empty content with no
// version (so the subsequent write is a create).
func (s *Remote) get(ctx context.Context, path string) ([]byte, string, error) {
	content, version, err := s.client.Get(ctx, path)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return content, version, nil
}
