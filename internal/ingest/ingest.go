// Package ingest extracts variable names from uploaded datasets and
// feeds them into the pending-definition queue.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Extraction is how names are pulled from a tabular file.
type Extraction int

const (
	// FromHeaders treats the file as a raw dataset: every column
	// header becomes a candidate variable name.
	FromHeaders Extraction = iota
	// FromColumn treats the file as an existing data dictionary: the
	// values of one named column are the candidate names.
	FromColumn
)

// Names reads a CSV stream and extracts candidate variable names.
// column is only consulted for FromColumn. Blank cells are skipped;
// names keep their file order.
func Names(r io.Reader, mode Extraction, column string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ingest: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	if mode == FromHeaders {
		var names []string
		for _, h := range header {
			if trimmed := strings.TrimSpace(h); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		return names, nil
	}

	colIdx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("ingest: column %q not found", column)
	}

	var names []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}
		if colIdx >= len(record) {
			continue
		}
		if trimmed := strings.TrimSpace(record[colIdx]); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names, nil
}
