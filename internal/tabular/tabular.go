// Package tabular encodes the record and roster tables as CSV with a header
// row. Columns are selected by name on decode so that adding a column stays
// backward compatible for readers.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"floorlog/internal/models"
)

// ErrMalformedData means blob content could not be decoded into rows. The
// codec never repairs or partially ingests malformed content.
var ErrMalformedData = errors.New("malformed table data")

// Persisted column names, in encoding order.
var (
	recordColumns = []string{"timestamp", "machine", "description"}
	rosterColumns = []string{"Machines", "Spec", "Note"}
)

// EncodeRecords serializes records with the fixed column order
// timestamp, machine, description.
func EncodeRecords(records []models.StatusRecord) ([]byte, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, recordColumns)
	for _, rec := range records {
		rows = append(rows, []string{
			models.FormatTimestamp(rec.Timestamp),
			rec.Machine,
			rec.Description,
		})
	}
	return writeCSV(rows)
}

// DecodeRecords parses records, preserving stored order. Empty input decodes
// to an empty set. A missing description column yields empty descriptions;
// missing timestamp or machine columns are malformed.
func DecodeRecords(content []byte) ([]models.StatusRecord, error) {
	table, err := readCSV(content)
	if err != nil {
		return nil, err
	}
	if table.empty() {
		return []models.StatusRecord{}, nil
	}

	tsCol, err := table.requiredColumn("timestamp")
	if err != nil {
		return nil, err
	}
	machineCol, err := table.requiredColumn("machine")
	if err != nil {
		return nil, err
	}
	descCol := table.column("description")

	records := make([]models.StatusRecord, 0, len(table.rows))
	for i, row := range table.rows {
		ts, err := models.ParseTimestamp(table.cell(row, tsCol))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedData, i+1, err)
		}
		records = append(records, models.StatusRecord{
			Timestamp:   ts,
			Machine:     table.cell(row, machineCol),
			Description: table.cell(row, descCol),
		})
	}
	return records, nil
}

// EncodeRoster serializes roster entries with the fixed column order
// Machines, Spec, Note.
func EncodeRoster(entries []models.RosterEntry) ([]byte, error) {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, rosterColumns)
	for _, entry := range entries {
		rows = append(rows, []string{entry.Machine, entry.Spec, entry.Note})
	}
	return writeCSV(rows)
}

// DecodeRoster parses roster entries. Missing Spec or Note columns yield
// empty values; a missing Machines column is malformed.
func DecodeRoster(content []byte) ([]models.RosterEntry, error) {
	table, err := readCSV(content)
	if err != nil {
		return nil, err
	}
	if table.empty() {
		return []models.RosterEntry{}, nil
	}

	machineCol, err := table.requiredColumn("Machines")
	if err != nil {
		return nil, err
	}
	specCol := table.column("Spec")
	noteCol := table.column("Note")

	entries := make([]models.RosterEntry, 0, len(table.rows))
	for _, row := range table.rows {
		entries = append(entries, models.RosterEntry{
			Machine: table.cell(row, machineCol),
			Spec:    table.cell(row, specCol),
			Note:    table.cell(row, noteCol),
		})
	}
	return entries, nil
}

// csvTable is a parsed header-plus-rows table with column lookup by name.
type csvTable struct {
	header []string
	rows   [][]string
}

func (t csvTable) empty() bool {
	return len(t.header) == 0
}

// column returns the index of a named column, or -1 when absent.
func (t csvTable) column(name string) int {
	for i, col := range t.header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

func (t csvTable) requiredColumn(name string) (int, error) {
	idx := t.column(name)
	if idx < 0 {
		return 0, fmt.Errorf("%w: missing column %q", ErrMalformedData, name)
	}
	return idx, nil
}

// cell reads one field, tolerating short rows and absent columns.
func (t csvTable) cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func readCSV(content []byte) (csvTable, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return csvTable{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return csvTable{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvTable{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
		}
		rows = append(rows, row)
	}
	return csvTable{header: header, rows: rows}, nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
