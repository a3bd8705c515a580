package models

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format for record timestamps: local clock,
// second resolution.
const TimestampLayout = "2006-01-02 15:04:05"

// Canonical status descriptions. These are an aggregation convention used by
// dashboards and counters; records may carry arbitrary description text and
// it is stored verbatim.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusError   = "error"
)

// StatusRecord is a single immutable status observation for one machine at
// one instant. Records are append-only; ordering is insertion order.
type StatusRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Machine     string    `json:"machine"`
	Description string    `json:"description"`
}

// RosterEntry is one row of the machine reference table. The roster is
// replaced wholesale on edit, never appended.
type RosterEntry struct {
	Machine string `json:"machine"`
	Spec    string `json:"spec,omitempty"`
	Note    string `json:"note,omitempty"`
}

// IsCanonicalStatus reports whether a description is one of the three
// canonical states.
func IsCanonicalStatus(description string) bool {
	switch description {
	case StatusRunning, StatusStopped, StatusError:
		return true
	}
	return false
}

// FormatTimestamp renders a timestamp in the wire format, truncated to
// second resolution.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a wire-format timestamp in the local location.
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	t, err := time.ParseInLocation(TimestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, nil
}
