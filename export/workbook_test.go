package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/popstat/engine"
)

func sampleTable(year int) engine.RegionTable {
	return engine.NewRegionTable([]engine.RegionObservation{
		{Year: year, RegionCode: "E12000001", RegionName: "North East", Population: 1000000},
		{Year: year, RegionCode: "E12000007", RegionName: "London", Population: 2000000},
	})
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	a, b := sampleTable(2023), sampleTable(2024)
	share := engine.ComputeShareChange(2023, a, 2024, b)

	var buf bytes.Buffer
	err := WriteWorkbook(&buf, RegionSheet(2023, a), RegionSheet(2024, b), ShareSheet(2023, 2024, share))
	if err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Regions 2023", "Regions 2024", "Share 2023-2024"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], name)
		}
	}

	header, _ := f.GetCellValue("Regions 2023", "D1")
	if header != "COUNT OF POPULATION" {
		t.Errorf("D1 = %q", header)
	}
	top, _ := f.GetCellValue("Regions 2023", "C2")
	if top != "London" {
		t.Errorf("C2 = %q, want London (largest first)", top)
	}
	count, _ := f.GetCellValue("Regions 2023", "D2")
	if count != "2000000" {
		t.Errorf("D2 = %q", count)
	}

	rows, err := f.GetRows("Share 2023-2024")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("share sheet rows = %d, want header + 2", len(rows))
	}
}

func TestWriteWorkbookNoSheets(t *testing.T) {
	if err := WriteWorkbook(&bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for no sheets")
	}
}

func TestShareSheetAbsent(t *testing.T) {
	s := ShareSheet(2023, 2024, nil)
	if len(s.Rows) != 0 || len(s.Header) != 4 {
		t.Errorf("absent share table should give a header-only sheet: %+v", s)
	}
}

func TestSheetName(t *testing.T) {
	if got := SheetName("a/b:c"); got != "a-b-c" {
		t.Errorf("SheetName = %q", got)
	}
	long := strings.Repeat("x", 40)
	if got := SheetName(long); len(got) != 31 {
		t.Errorf("length = %d, want 31", len(got))
	}
	if got := SheetName("  "); got != "Sheet" {
		t.Errorf("blank name = %q", got)
	}
}

func TestDuplicateSheetNamesAreSuffixed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, RegionSheet(2023, sampleTable(2023)), RegionSheet(2023, sampleTable(2023))); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[1] != "Regions 2023 (2)" {
		t.Errorf("sheets = %v", sheets)
	}
}
