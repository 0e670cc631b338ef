package engine

import (
	"log"
	"sort"
)

// ============================================================================
// SHARE RESHAPER — Two cleaned years → share and percentage-point change
// ============================================================================
// Pipeline:
//   1. Each table is one year: the caller's yearA / yearB label it
//   2. Share = count / year total × 100 (duplicate rows are summed)
//   3. Pair shares by region
//   4. PointChange = share(yearB) − share(yearA)
//   5. Sort ascending by PointChange so declines come first
//
// A nil *ShareTable means "not enough data", not a failure.
// ============================================================================

// ComputeShareChange compares the regional shares of two years.
//
// It returns nil when either year contributes no rows or a zero total.
// Regions present in only one of the two years are left out of the
// records; the year totals still include them.
func ComputeShareChange(yearA int, a RegionTable, yearB int, b RegionTable) *ShareTable {
	sharesA := ComputeShares(a)
	sharesB := ComputeShares(b)
	if sharesA == nil || sharesB == nil {
		log.Printf("⚠️ popstat: share change %d → %d unavailable (rows: %d / %d)", yearA, yearB, a.Len(), b.Len())
		return nil
	}

	records := make([]ShareRecord, 0, len(sharesA))
	for _, region := range sortedKeys(sharesA) {
		shareB, ok := sharesB[region]
		if !ok {
			continue
		}
		shareA := sharesA[region]
		records = append(records, ShareRecord{
			Region:      region,
			ShareA:      shareA,
			ShareB:      shareB,
			PointChange: shareB - shareA,
		})
	}
	SortShareRecords(records)

	return &ShareTable{YearA: yearA, YearB: yearB, Records: records}
}

// ComputeShares returns each region's percentage of the table's total.
// Duplicate rows for one region are summed. Returns nil for an empty table
// or a zero total.
func ComputeShares(t RegionTable) map[string]float64 {
	total := SumPopulation(t)
	if total == 0 {
		return nil
	}
	shares := make(map[string]float64, t.Len())
	for _, r := range t.rows {
		shares[r.RegionName] += float64(r.Population) / float64(total) * 100
	}
	return shares
}

// SortShareRecords orders records ascending by PointChange, then by region.
func SortShareRecords(records []ShareRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].PointChange != records[j].PointChange {
			return records[i].PointChange < records[j].PointChange
		}
		return records[i].Region < records[j].Region
	})
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
