// Package projection derives read views from the full record sequence.
// Everything here is pure: no I/O, deterministic given the input.
package projection

import "floorlog/internal/models"

// LatestPerMachine returns, for each distinct machine, the record with the
// greatest timestamp. An exact timestamp tie goes to the record appearing
// later in stored order, so the most recently appended observation wins.
func LatestPerMachine(records []models.StatusRecord) map[string]models.StatusRecord {
	latest := make(map[string]models.StatusRecord)
	for _, record := range records {
		current, seen := latest[record.Machine]
		if !seen || !record.Timestamp.Before(current.Timestamp) {
			latest[record.Machine] = record
		}
	}
	return latest
}

// CountsByDescription tallies records per description over whatever subset
// the caller has already filtered. Non-canonical descriptions count like any
// other; the three-state vocabulary is a display convention only.
func CountsByDescription(records []models.StatusRecord) map[string]int {
	counts := make(map[string]int)
	for _, record := range records {
		counts[record.Description]++
	}
	return counts
}

// Machines returns the distinct machine identifiers in first-seen order.
func Machines(records []models.StatusRecord) []string {
	seen := make(map[string]struct{})
	var machines []string
	for _, record := range records {
		if _, ok := seen[record.Machine]; ok {
			continue
		}
		seen[record.Machine] = struct{}{}
		machines = append(machines, record.Machine)
	}
	return machines
}
