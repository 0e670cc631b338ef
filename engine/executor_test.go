package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/spektr-org/popstat/schema"
)

// ============================================================================
// EXECUTE
// ============================================================================

func TestExecuteBuildsEverything(t *testing.T) {
	a := regionTable(2023, "A", 1000000, "B", 2000000)
	b := regionTable(2024, "A", 1500000, "B", 2500000)

	result, err := Execute(Request{YearA: 2023, YearB: 2024}, a, b)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Error("expected Success")
	}
	if result.Title != DefaultTitle {
		t.Errorf("Title = %q", result.Title)
	}
	if result.Bar == nil || !strings.Contains(result.Bar.Title, "2023") {
		t.Errorf("bar chart should cover year A: %+v", result.Bar)
	}
	if result.Pie == nil || !strings.Contains(result.Pie.Title, "2024") {
		t.Errorf("pie chart should cover year B: %+v", result.Pie)
	}
	if result.ShareChange == nil || result.Share == nil {
		t.Fatal("expected share change output")
	}
	if len(result.Tables) != 3 {
		t.Errorf("expected 3 tables, got %d", len(result.Tables))
	}
	if result.Summary == nil || result.Summary.Increase == nil || result.Summary.Increase.Region != "A" {
		t.Errorf("summary = %+v", result.Summary)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if _, ok := result.Reports[2023]; !ok {
		t.Error("missing clean report for 2023")
	}
	if !strings.Contains(result.Reply, "2023 → 2024") {
		t.Errorf("Reply = %q", result.Reply)
	}
}

func TestExecuteEmptyTableIsNoRegionData(t *testing.T) {
	a := regionTable(2023, "A", 1000000)

	_, err := Execute(Request{YearA: 2023, YearB: 2024}, a, NewRegionTable(nil))
	if !errors.Is(err, ErrNoRegionData) {
		t.Fatalf("expected ErrNoRegionData, got %v", err)
	}
}

func TestExecuteZeroTotalOmitsPieAndShare(t *testing.T) {
	a := regionTable(2023, "A", 1000000)
	b := regionTable(2024, "A", 0)

	result, err := Execute(Request{YearA: 2023, YearB: 2024}, a, b)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Pie != nil {
		t.Error("pie should be omitted for a zero total")
	}
	if result.ShareChange != nil || result.Share != nil {
		t.Error("share change should be absent for a zero total")
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 messages, got %v", result.Errors)
	}
	if result.Bar == nil {
		t.Error("bar chart should still be built")
	}
}

func TestExecuteFromRawTables(t *testing.T) {
	rawA := rawTable(
		rawRow("2023", "London", "E12000007", "regions", "6000000"),
		rawRow("2023", "Wales", "W92000004", "countries", "2000000"),
		rawRow("2023", "North East", "E12000001", "regions", "1700000"),
	)
	rawB := rawTable(
		rawRow("2024", "London", "E12000007", "regions", "6100000"),
		rawRow("2024", "North East", "E12000001", "regions", "1690000"),
	)

	result, err := Execute(Request{YearA: 2023, YearB: 2024}, mustFilter(t, rawA), mustFilter(t, rawB))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if n := len(result.Bar.Series[0].Data); n != 2 {
		t.Errorf("expected 2 bars, got %d", n)
	}
	if result.Reports[2023].Scanned != 3 || result.Reports[2023].RegionRows != 2 {
		t.Errorf("report 2023 = %+v", result.Reports[2023])
	}
}

// ============================================================================
// TABLES AND SUMMARY
// ============================================================================

func TestBuildRegionTable(t *testing.T) {
	table := BuildRegionTable(regionTable(2023, "A", 1000000, "B", 2500000), 2023)

	if len(table.Columns) != 4 || table.Columns[3].Key != schema.FieldPopulation {
		t.Fatalf("columns = %+v", table.Columns)
	}
	if table.Rows[0][2] != "B" || table.Rows[0][3] != "2,500,000" {
		t.Errorf("first row = %v", table.Rows[0])
	}
	if table.Summary.Values[schema.FieldPopulation] != "3,500,000" {
		t.Errorf("total = %q", table.Summary.Values[schema.FieldPopulation])
	}
}

func TestBuildRegionTableEmpty(t *testing.T) {
	table := BuildRegionTable(NewRegionTable(nil), 2023)
	if table == nil || len(table.Rows) != 0 || table.Summary != nil {
		t.Errorf("expected an empty table with columns, got %+v", table)
	}
}

func TestBuildShareTable(t *testing.T) {
	share := ComputeShareChange(2023, regionTable(2023, "A", 1000000, "B", 2000000),
		2024, regionTable(2024, "A", 1500000, "B", 2500000))

	table := BuildShareTable(share)
	if table.Columns[1].Key != "share_2023" || table.Columns[2].Key != "share_2024" {
		t.Errorf("columns = %+v", table.Columns)
	}
	if table.Rows[0][0] != "B" || table.Rows[0][3] != "-4.17pp" {
		t.Errorf("first row = %v", table.Rows[0])
	}
	if table.Rows[1][1] != "33.3%" || table.Rows[1][2] != "37.5%" || table.Rows[1][3] != "+4.17pp" {
		t.Errorf("second row = %v", table.Rows[1])
	}
	if table.Summary.Values["pp_change"] != "0.00pp" {
		t.Errorf("total change = %q", table.Summary.Values["pp_change"])
	}

	if BuildShareTable(nil) != nil {
		t.Error("expected nil for absent share table")
	}
}

func TestBuildShareSummary(t *testing.T) {
	share := &ShareTable{YearA: 2023, YearB: 2024, Records: []ShareRecord{
		{Region: "North East", PointChange: -0.2},
		{Region: "Wales", PointChange: 0},
		{Region: "London", PointChange: 0.3},
	}}

	summary := BuildShareSummary(share)
	if summary.Increase == nil || summary.Increase.Region != "London" || summary.Increase.Direction != "increased" {
		t.Errorf("increase = %+v", summary.Increase)
	}
	if summary.Decline == nil || summary.Decline.Region != "North East" || summary.Decline.Direction != "decreased" {
		t.Errorf("decline = %+v", summary.Decline)
	}
	if summary.Count != 3 || summary.Period != "2023 → 2024" {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(summary.Value, "London increased the most (+0.30pp)") {
		t.Errorf("Value = %q", summary.Value)
	}
}

func TestBuildShareSummaryFlat(t *testing.T) {
	summary := BuildShareSummary(&ShareTable{YearA: 2023, YearB: 2023, Records: []ShareRecord{{Region: "A"}}})
	if summary.Increase != nil || summary.Decline != nil {
		t.Errorf("flat shares should report no movers: %+v", summary)
	}
	if summary.Value != "No change in regional shares" {
		t.Errorf("Value = %q", summary.Value)
	}
}

// ============================================================================
// FORMATTING
// ============================================================================

func TestFormatting(t *testing.T) {
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
	if got := FormatPercent(33.333); got != "33.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPointChange(4.16667); got != "+4.17pp" {
		t.Errorf("FormatPointChange = %q", got)
	}
	if got := FormatPointChange(0); got != "0.00pp" {
		t.Errorf("FormatPointChange(0) = %q", got)
	}
	if got := ToMillions(2500000); got != 2.5 {
		t.Errorf("ToMillions = %g", got)
	}
}
