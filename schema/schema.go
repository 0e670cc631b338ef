package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Describes the raw columns of a statistics feed
// ============================================================================
// The engine uses the schema to check that a raw table carries the columns
// the cleaning pipeline reads, and to rename raw headers to semantic names.
// Renaming is a lookup, never an in-place mutation of the raw table.
// ============================================================================

// Raw column headers of the NOMIS population estimates CSV.
const (
	ColumnDate          = "DATE"
	ColumnGeographyType = "GEOGRAPHY_TYPE"
	ColumnGeographyCode = "GEOGRAPHY_CODE"
	ColumnGeographyName = "GEOGRAPHY_NAME"
	ColumnObsValue      = "OBS_VALUE"
)

// GeographyTypeRegions is the GEOGRAPHY_TYPE value of first-level
// administrative regions. National, sub-regional and local-authority rows
// carry other values.
const GeographyTypeRegions = "regions"

// Semantic names assigned to the projected columns.
const (
	FieldYear       = "YEAR"
	FieldRegionCode = "GEOGRAPHY_CODE"
	FieldRegion     = "REGION"
	FieldPopulation = "COUNT OF POPULATION"
)

// Config describes the shape of a raw dataset.
type Config struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Columns     []ColumnMeta `json:"columns"`
}

// ColumnMeta describes one raw column.
type ColumnMeta struct {
	// Raw header as delivered upstream.
	Key string `json:"key"`

	// Semantic name after cleaning (empty = dropped).
	Rename string `json:"rename,omitempty"`

	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`

	// Coerced to a number during cleaning.
	Numeric bool `json:"numeric,omitempty"`

	Required bool `json:"required"`
}

// PopulationEstimates returns the column contract of dataset NM_2002_1.
func PopulationEstimates() Config {
	return Config{
		Name:        "NM_2002_1",
		Description: "Population estimates - local authority based by single year of age",
		Columns: []ColumnMeta{
			{Key: ColumnDate, Rename: FieldYear, DisplayName: "Year", Numeric: true, Required: true},
			{Key: ColumnGeographyType, DisplayName: "Geography type", Description: "Granularity of the geography (regions, countries, ...)", Required: true},
			{Key: ColumnGeographyCode, Rename: FieldRegionCode, DisplayName: "Region code", Required: true},
			{Key: ColumnGeographyName, Rename: FieldRegion, DisplayName: "Region", Required: true},
			{Key: ColumnObsValue, Rename: FieldPopulation, DisplayName: "Count of population", Numeric: true, Required: true},
		},
	}
}

// RequiredColumns returns the raw headers the pipeline cannot do without.
func (c Config) RequiredColumns() []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Required {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// Missing lists required columns absent from columns, in schema order.
func (c Config) Missing(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[strings.TrimSpace(col)] = true
	}
	var missing []string
	for _, key := range c.RequiredColumns() {
		if !present[key] {
			missing = append(missing, key)
		}
	}
	return missing
}

// Validate returns a *ShapeError when a required column is absent.
func (c Config) Validate(columns []string) error {
	if missing := c.Missing(columns); len(missing) > 0 {
		return &ShapeError{Dataset: c.Name, Missing: missing}
	}
	return nil
}

// Renamed returns the semantic name for a raw header, or the header itself
// when the schema does not rename it.
func (c Config) Renamed(key string) string {
	for _, col := range c.Columns {
		if col.Key == key && col.Rename != "" {
			return col.Rename
		}
	}
	return key
}

// DisplayName returns the human label for a raw header or semantic name.
func (c Config) DisplayName(key string) string {
	for _, col := range c.Columns {
		if col.Key == key || (col.Rename != "" && col.Rename == key) {
			return col.DisplayName
		}
	}
	return key
}

// ShapeError reports a raw table that lacks columns the pipeline reads.
type ShapeError struct {
	Dataset string
	Missing []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset %s: missing expected columns %s", e.Dataset, strings.Join(e.Missing, ", "))
}
