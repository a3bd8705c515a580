package main

import (
	"fmt"
	"testing"

	"floorlog/internal/blob"
	"floorlog/internal/store"
	"floorlog/internal/tabular"
)

func TestFormatCLIError_ForbiddenGuidance(t *testing.T) {
	err := fmt.Errorf("append: %w", blob.ErrForbidden)
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: verify FLOORLOG_TOKEN grants write access to the configured repository.") {
		t.Fatalf("expected token guidance, got %v", lines)
	}
}

func TestFormatCLIError_ConflictGuidance(t *testing.T) {
	err := fmt.Errorf("replace roster: %w", &blob.ConflictError{Path: "data/machines.csv", ExpectedVersion: "abc"})
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: another session updated the same table; re-read the current state and retry.") {
		t.Fatalf("expected conflict guidance, got %v", lines)
	}
}

func TestFormatCLIError_UnavailableGuidance(t *testing.T) {
	err := fmt.Errorf("list: %w", blob.ErrUnavailable)
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: could not reach the remote store; retry shortly or increase FLOORLOG_HTTP_TIMEOUT.") {
		t.Fatalf("expected connectivity guidance, got %v", lines)
	}
}

func TestFormatCLIError_MalformedGuidance(t *testing.T) {
	err := fmt.Errorf("list: %w", tabular.ErrMalformedData)
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: the stored table could not be decoded; inspect the raw file before writing again.") {
		t.Fatalf("expected malformed-data guidance, got %v", lines)
	}
}

func TestFormatCLIError_ConfirmationGuidance(t *testing.T) {
	lines := formatCLIError(store.ErrConfirmationMismatch)
	if len(lines) != 2 {
		t.Fatalf("expected error plus hint, got %v", lines)
	}
}

func TestFormatCLIError_Nil(t *testing.T) {
	if lines := formatCLIError(nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func containsLine(lines []string, expected string) bool {
	for _, line := range lines {
		if line == expected {
			return true
		}
	}
	return false
}
