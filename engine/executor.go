package engine

import (
	"errors"
	"fmt"
	"log"
)

// ============================================================================
// EXECUTOR — Two cleaned years → render-ready Result
// ============================================================================
// Entry point: Execute(req, tableA, tableB, opts...)
//
// Pipeline:
//   1. Refuse empty tables (terminal, user-visible condition)
//   2. Bar chart for year A, pie chart for year B
//   3. Share change A → B (may be absent)
//   4. Tables and summary for the data tabs
//   5. Return Result
//
// This function never calls an external service. All computation is local.
// ============================================================================

// ErrNoRegionData reports that cleaning left nothing to chart.
var ErrNoRegionData = errors.New("no region-level rows in the statistics feed")

// DefaultTitle is the dashboard heading.
const DefaultTitle = "NOMIS Population Estimates – Data Visualisation App"

// Execute builds the three charts, tables and summary for two years.
func Execute(req Request, a, b RegionTable, opts ...Option) (*Result, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, fmt.Errorf("%d: %d rows, %d: %d rows: %w", req.YearA, a.Len(), req.YearB, b.Len(), ErrNoRegionData)
	}

	log.Printf("📊 popstat: building charts for %d (%d regions) and %d (%d regions)",
		req.YearA, a.Len(), req.YearB, b.Len())

	result := &Result{
		Success: true,
		Title:   DefaultTitle,
		Bar:     BuildRegionBarChart(a, req.YearA, opts...),
		Pie:     BuildRegionPieChart(b, req.YearB, opts...),
		Tables: []*TableData{
			BuildRegionTable(a, req.YearA),
			BuildRegionTable(b, req.YearB),
		},
		Reports: map[int]CleanReport{
			req.YearA: a.Report(),
			req.YearB: b.Report(),
		},
	}

	if result.Pie == nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Population for %d sums to zero; pie chart omitted.", req.YearB))
	}

	share := ComputeShareChange(req.YearA, a, req.YearB, b)
	result.Share = share
	result.ShareChange = BuildShareChangeChart(share, opts...)
	if share != nil {
		result.Tables = append(result.Tables, BuildShareTable(share))
		result.Summary = BuildShareSummary(share)
	}
	if result.ShareChange == nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Not enough data to compare regional shares between %d and %d.", req.YearA, req.YearB))
	}

	result.Reply = buildReply(req, result)
	return result, nil
}

func buildReply(req Request, result *Result) string {
	if result.Summary == nil {
		return fmt.Sprintf("Population by region for %d and %d.", req.YearA, req.YearB)
	}
	return fmt.Sprintf("Regional share change %s: %s.", result.Summary.Period, result.Summary.Value)
}
