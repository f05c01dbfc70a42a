package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// table is a loaded CSV file with header-addressed columns.
type table struct {
	columns map[string]int
	rows    [][]string
}

// readTable loads a CSV file and indexes its header row. Column names are
// matched case-insensitively.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; skipped per-row later
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return &table{columns: columns, rows: records[1:]}, nil
}

// get returns the trimmed value of a column in a row, or "" when the
// column is absent or the row is too short.
func (t *table) get(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optional returns a pointer to the column value, or nil when empty.
func (t *table) optional(row []string, column string) *string {
	v := t.get(row, column)
	if v == "" {
		return nil
	}
	return &v
}
