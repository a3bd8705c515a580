package blob

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the path has never been written. Callers that can
	// start from empty recover locally; this is not a fatal condition.
	ErrNotFound = errors.New("blob not found")

	// ErrConflict means a conditional write lost to a concurrent writer.
	// Retryable after re-reading the current version.
	ErrConflict = errors.New("version conflict")

	// ErrUnavailable means the backing store could not be reached
	// (transport failure or timeout). Retryable.
	ErrUnavailable = errors.New("store unavailable")

	// ErrForbidden means the credential was rejected. Never retryable.
	ErrForbidden = errors.New("access forbidden")
)

// ConflictError carries the version tokens involved in a failed conditional
// write. It matches ErrConflict under errors.Is.
type ConflictError struct {
	Path            string
	ExpectedVersion string
}

func (e *ConflictError) Error() string {
	if e.ExpectedVersion == "" {
		return fmt.Sprintf("version conflict on %s: path already exists", e.Path)
	}
	return fmt.Sprintf("version conflict on %s: expected version %s is stale", e.Path, e.ExpectedVersion)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
