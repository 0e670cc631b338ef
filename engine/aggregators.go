package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// AGGREGATORS — Totals, Sorting and Formatting
// ============================================================================

// SumPopulation totals every row of a table.
func SumPopulation(t RegionTable) int64 {
	var total int64
	for _, r := range t.rows {
		total += r.Population
	}
	return total
}

// ============================================================================
// SORTING
// ============================================================================

// SortByPopulationDesc returns a copy of the rows, largest population
// first. Equal populations keep region-name order.
func SortByPopulationDesc(t RegionTable) []RegionObservation {
	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Population != rows[j].Population {
			return rows[i].Population > rows[j].Population
		}
		return rows[i].RegionName < rows[j].RegionName
	})
	return rows
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatCount formats a population with comma separators ("1,234,567").
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a share as "33.3%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatPointChange formats a signed percentage-point change ("+4.17pp").
func FormatPointChange(v float64) string {
	if v == 0 {
		return "0.00pp"
	}
	return fmt.Sprintf("%+.2fpp", v)
}

// ToMillions scales a count to millions.
func ToMillions(n int64) float64 {
	return float64(n) / 1_000_000
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
