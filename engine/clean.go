package engine

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/popstat/schema"
)

// ============================================================================
// CLEANER — Raw feed → region-level observations
// ============================================================================
// Pipeline:
//   1. Keep rows whose GEOGRAPHY_TYPE is exactly "regions" → SubView
//   2. Project DATE, GEOGRAPHY_CODE, GEOGRAPHY_NAME, OBS_VALUE
//   3. Rename to year / region code / region / population (schema lookup)
//   4. Coerce year and population; unparsable values count as missing
//   5. Drop rows missing either value
//   6. Return a new RegionTable; the raw table is never touched
// ============================================================================

var regionSchema = schema.PopulationEstimates()

// regionsOnly selects first-level administrative regions.
var regionsOnly = Filters{schema.ColumnGeographyType: {schema.GeographyTypeRegions}}

// FilterRegions cleans a raw view into region observations.
//
// A view lacking one of the required columns yields a *schema.ShapeError.
// A view with no usable region rows yields an empty table and no error;
// callers must check IsEmpty before charting.
func FilterRegions(view RecordView) (RegionTable, error) {
	if err := regionSchema.Validate(view.Columns()); err != nil {
		return RegionTable{}, err
	}

	regions := ApplyFilters(view, regionsOnly)
	report := CleanReport{Scanned: view.Len(), RegionRows: regions.Len()}

	rows := make([]RegionObservation, 0, regions.Len())
	for i := 0; i < regions.Len(); i++ {
		year, okYear := parseYear(regions.Value(i, schema.ColumnDate))
		count, okCount := parsePopulation(regions.Value(i, schema.ColumnObsValue))
		if !okYear || !okCount {
			report.Dropped++
			continue
		}
		rows = append(rows, RegionObservation{
			Year:       year,
			RegionCode: regions.Value(i, schema.ColumnGeographyCode),
			RegionName: regions.Value(i, schema.ColumnGeographyName),
			Population: count,
		})
	}

	if report.Dropped > 0 {
		log.Printf("⚠️ popstat: dropped %d of %d region rows with a missing %s or %s",
			report.Dropped, report.RegionRows, regionSchema.Renamed(schema.ColumnDate), regionSchema.Renamed(schema.ColumnObsValue))
	}

	return RegionTable{rows: rows, report: report}, nil
}

// View re-exposes the cleaned rows under the raw column names, so a
// cleaned table can be fed back through FilterRegions unchanged.
func (t RegionTable) View() RecordView {
	return regionAdapter.Bind(t.rows)
}

var regionAdapter = NewDomainAdapter[RegionObservation]().
	Column(schema.ColumnDate, func(o RegionObservation) string { return strconv.Itoa(o.Year) }).
	Column(schema.ColumnGeographyType, func(RegionObservation) string { return schema.GeographyTypeRegions }).
	Column(schema.ColumnGeographyCode, func(o RegionObservation) string { return o.RegionCode }).
	Column(schema.ColumnGeographyName, func(o RegionObservation) string { return o.RegionName }).
	Column(schema.ColumnObsValue, func(o RegionObservation) string { return strconv.FormatInt(o.Population, 10) })

// ============================================================================
// COERCION
// ============================================================================

// parseYear accepts "2023" and integral floats such as "2023.0".
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, ok := parseIntegral(s)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// parsePopulation accepts non-negative whole numbers, including float
// spellings such as "1000000.0" or "1e6".
func parsePopulation(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, n >= 0
	}
	f, ok := parseIntegral(s)
	if !ok || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseIntegral(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}
