package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spektr-org/popstat/engine"
)

// ============================================================================
// CSV HELPER — Parses a delimited response body into an engine.RawTable
// ============================================================================
// The fetcher reads the body from the network; this helper only decodes.
// Short rows are padded to the header width. Rows wider than the header
// are malformed and skipped.
// ============================================================================

// ErrEmptyBody reports a body with no header row at all.
var ErrEmptyBody = errors.New("empty CSV body")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseRawCSV decodes CSV bytes into a RawTable. Cells are trimmed.
// A header-only body yields a table with no rows.
func ParseRawCSV(data []byte) (*engine.RawTable, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyBody
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := &engine.RawTable{Headers: headers, Rows: [][]string{}}
	skipped := 0

	// Read rows
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(table.Rows)+skipped+2, err)
		}
		if len(row) > len(headers) {
			skipped++
			continue
		}
		if isBlank(row) {
			continue
		}

		cells := make([]string, len(headers))
		for i, val := range row {
			cells[i] = strings.TrimSpace(val)
		}
		table.Rows = append(table.Rows, cells)
	}

	if skipped > 0 {
		log.Printf("⚠️ popstat: skipped %d CSV rows wider than the %d-column header", skipped, len(headers))
	}

	return table, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
