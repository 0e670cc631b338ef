package schema

import (
	"bytes"
	"errors"
	"go/format"
	"os"
	"strings"
	"testing"
)

// ============================================================================
// COLUMN CONTRACT TESTS
// ============================================================================

var nomisHeaders = []string{
	"DATE", "DATE_NAME", "DATE_CODE", "DATE_TYPE", "GEOGRAPHY", "GEOGRAPHY_NAME",
	"GEOGRAPHY_CODE", "GEOGRAPHY_TYPE", "GENDER", "C_AGE", "MEASURES", "OBS_VALUE",
}

func TestValidateAcceptsNomisHeaders(t *testing.T) {
	if err := PopulationEstimates().Validate(nomisHeaders); err != nil {
		t.Fatalf("Validate failed on full NOMIS header: %v", err)
	}
}

func TestValidateReportsMissingColumns(t *testing.T) {
	err := PopulationEstimates().Validate([]string{"DATE", "GEOGRAPHY_NAME", "OBS_VALUE"})
	if err == nil {
		t.Fatal("expected a ShapeError")
	}

	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
	assertContains(t, shapeErr.Missing, ColumnGeographyType, "missing columns")
	assertContains(t, shapeErr.Missing, ColumnGeographyCode, "missing columns")
	if len(shapeErr.Missing) != 2 {
		t.Errorf("expected 2 missing columns, got %v", shapeErr.Missing)
	}
	if !strings.Contains(err.Error(), "NM_2002_1") {
		t.Errorf("error should name the dataset: %q", err.Error())
	}
}

func TestMissingTrimsHeaderWhitespace(t *testing.T) {
	missing := PopulationEstimates().Missing([]string{" DATE", "GEOGRAPHY_TYPE ", "GEOGRAPHY_CODE", "GEOGRAPHY_NAME", "OBS_VALUE"})
	if len(missing) != 0 {
		t.Errorf("expected no missing columns, got %v", missing)
	}
}

func TestRenamed(t *testing.T) {
	cfg := PopulationEstimates()
	tests := []struct {
		key  string
		want string
	}{
		{ColumnDate, FieldYear},
		{ColumnGeographyName, FieldRegion},
		{ColumnObsValue, FieldPopulation},
		{ColumnGeographyCode, FieldRegionCode},
		{ColumnGeographyType, ColumnGeographyType},
		{"MEASURES", "MEASURES"},
	}
	for _, tt := range tests {
		if got := cfg.Renamed(tt.key); got != tt.want {
			t.Errorf("Renamed(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestDisplayNameResolvesRawAndRenamedKeys(t *testing.T) {
	cfg := PopulationEstimates()
	if got := cfg.DisplayName(ColumnObsValue); got != "Count of population" {
		t.Errorf("DisplayName(OBS_VALUE) = %q", got)
	}
	if got := cfg.DisplayName(FieldRegion); got != "Region" {
		t.Errorf("DisplayName(REGION) = %q", got)
	}
	if got := cfg.DisplayName("UNKNOWN"); got != "UNKNOWN" {
		t.Errorf("DisplayName(UNKNOWN) = %q", got)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func assertContains(t *testing.T, slice []string, item string, msg string) {
	t.Helper()
	for _, s := range slice {
		if s == item {
			return
		}
	}
	t.Errorf("%s: %q not found in %v", msg, item, slice)
}

// ============================================================================
// SOURCE FORMAT
// ============================================================================

func TestSchemaSourceIsGofmtClean(t *testing.T) {
	src, err := os.ReadFile("schema.go")
	if err != nil {
		t.Fatalf("read schema.go: %v", err)
	}
	formatted, err := format.Source(src)
	if err != nil {
		t.Fatalf("format schema.go: %v", err)
	}
	if !bytes.Equal(src, formatted) {
		t.Error("schema.go is not gofmt-formatted")
	}
}
