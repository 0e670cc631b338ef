package helpers

import (
	"errors"
	"testing"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

var nomisCSV = []byte("\"DATE\",\"DATE_NAME\",\"GEOGRAPHY_NAME\",\"GEOGRAPHY_CODE\",\"GEOGRAPHY_TYPE\",\"OBS_VALUE\"\n" +
	"\"2023\",\"2023\",\"North East\",\"E12000001\",\"regions\",\"1712345\"\n" +
	"\"2023\",\"2023\",\"Hartlepool\",\"E06000001\",\"local authorities: district / unitary (as of April 2023)\",\"58000\"\n")

func TestParseRawCSVReadsNomisBody(t *testing.T) {
	table, err := ParseRawCSV(nomisCSV)
	if err != nil {
		t.Fatalf("ParseRawCSV failed: %v", err)
	}
	if len(table.Headers) != 6 {
		t.Fatalf("expected 6 headers, got %d: %v", len(table.Headers), table.Headers)
	}
	if table.Headers[2] != "GEOGRAPHY_NAME" || table.Headers[4] != "GEOGRAPHY_TYPE" {
		t.Fatalf("quoted headers not unwrapped: %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Rows[0][2]; got != "North East" {
		t.Errorf("GEOGRAPHY_NAME = %q, want North East", got)
	}
	if got := table.Rows[1][4]; got != "local authorities: district / unitary (as of April 2023)" {
		t.Errorf("quoted cell with comma-free punctuation mangled: %q", got)
	}
}

func TestParseRawCSVHeaderOnly(t *testing.T) {
	table, err := ParseRawCSV([]byte("DATE,GEOGRAPHY_NAME,OBS_VALUE\n"))
	if err != nil {
		t.Fatalf("header-only body should parse: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Errorf("expected 3 headers, got %v", table.Headers)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
}

func TestParseRawCSVEmptyBody(t *testing.T) {
	_, err := ParseRawCSV(nil)
	if !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseRawCSVStripsBOMAndTrims(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(" DATE , OBS_VALUE \n 2023 , 10 \n")...)
	table, err := ParseRawCSV(data)
	if err != nil {
		t.Fatalf("ParseRawCSV failed: %v", err)
	}
	if table.Headers[0] != "DATE" || table.Headers[1] != "OBS_VALUE" {
		t.Errorf("headers not cleaned: %q", table.Headers)
	}
	if table.Rows[0][0] != "2023" || table.Rows[0][1] != "10" {
		t.Errorf("cells not trimmed: %q", table.Rows[0])
	}
}

func TestParseRawCSVPadsShortRowsSkipsWideRows(t *testing.T) {
	data := []byte("A,B,C\n1,2\n1,2,3,4\n\n4,5,6\n")
	table, err := ParseRawCSV(data)
	if err != nil {
		t.Fatalf("ParseRawCSV failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows (short padded, wide and blank skipped), got %d: %v", len(table.Rows), table.Rows)
	}
	if len(table.Rows[0]) != 3 || table.Rows[0][2] != "" {
		t.Errorf("short row not padded: %q", table.Rows[0])
	}
	if table.Rows[1][0] != "4" {
		t.Errorf("expected last row to start with 4, got %q", table.Rows[1])
	}
}
