package models

import (
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	want := time.Date(2024, 1, 1, 10, 30, 45, 0, time.Local)

	got, err := ParseTimestamp(FormatTimestamp(want))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("round trip mismatch: %v != %v", got, want)
	}
}

func TestFormatTimestampSecondResolution(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 30, 45, 999999999, time.Local)
	if got := FormatTimestamp(ts); got != "2024-01-01 10:30:45" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "  ", "2024-01-01", "10:30:45", "yesterday"} {
		if _, err := ParseTimestamp(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestIsCanonicalStatus(t *testing.T) {
	for _, status := range []string{StatusRunning, StatusStopped, StatusError} {
		if !IsCanonicalStatus(status) {
			t.Fatalf("expected %q to be canonical", status)
		}
	}
	if IsCanonicalStatus("waiting on parts") {
		t.Fatal("free-form text must not be canonical")
	}
	if IsCanonicalStatus("Running") {
		t.Fatal("canonical match is case sensitive")
	}
}
