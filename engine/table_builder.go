package engine

import (
	"fmt"
	"strconv"

	"github.com/spektr-org/popstat/schema"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from cleaned and share tables
// ============================================================================

// BuildRegionTable lists one row per region, largest population first.
func BuildRegionTable(t RegionTable, year int) *TableData {
	title := fmt.Sprintf("Population by Region (%d)", year)
	columns := []Column{
		{Key: schema.FieldYear, Label: regionSchema.DisplayName(schema.FieldYear), Type: "number", Align: "center"},
		{Key: schema.FieldRegionCode, Label: regionSchema.DisplayName(schema.FieldRegionCode), Type: "text", Align: "left"},
		{Key: schema.FieldRegion, Label: regionSchema.DisplayName(schema.FieldRegion), Type: "text", Align: "left"},
		{Key: schema.FieldPopulation, Label: regionSchema.DisplayName(schema.FieldPopulation), Type: "number", Align: "right"},
	}

	if t.IsEmpty() {
		return &TableData{Title: title, Columns: columns, Rows: [][]string{}}
	}

	rows := make([][]string, 0, t.Len())
	for _, r := range SortByPopulationDesc(t) {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			r.RegionCode,
			r.RegionName,
			FormatCount(r.Population),
		})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d regions)", t.Len()),
			Values: map[string]string{
				schema.FieldPopulation: FormatCount(SumPopulation(t)),
			},
		},
	}
}

// BuildShareTable lists shares and point changes in share-table order.
// Returns nil for an absent share table.
func BuildShareTable(s *ShareTable) *TableData {
	if s == nil {
		return nil
	}

	colA := fmt.Sprintf("share_%d", s.YearA)
	colB := fmt.Sprintf("share_%d", s.YearB)
	columns := []Column{
		{Key: "region", Label: LabelRegion, Type: "text", Align: "left"},
		{Key: colA, Label: fmt.Sprintf("Share %d", s.YearA), Type: "percent", Align: "right"},
		{Key: colB, Label: fmt.Sprintf("Share %d", s.YearB), Type: "percent", Align: "right"},
		{Key: "pp_change", Label: LabelPointChange, Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(s.Records))
	var sumA, sumB float64
	for _, r := range s.Records {
		rows = append(rows, []string{
			r.Region,
			FormatPercent(r.ShareA),
			FormatPercent(r.ShareB),
			FormatPointChange(r.PointChange),
		})
		sumA += r.ShareA
		sumB += r.ShareB
	}

	return &TableData{
		Title:   fmt.Sprintf("Population Share by Region (%d → %d)", s.YearA, s.YearB),
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: "Total",
			Values: map[string]string{
				colA:        FormatPercent(sumA),
				colB:        FormatPercent(sumB),
				"pp_change": FormatPointChange(RoundTo2(sumB - sumA)),
			},
		},
	}
}
