// Package dashboard serves the population charts over HTTP.
//
// The Service runs the pipeline (fetch both years, clean, build) for every
// request; the fetcher's cache keeps that to one upstream call per year.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/spektr-org/popstat/engine"
	"github.com/spektr-org/popstat/nomis"
	"github.com/spektr-org/popstat/schema"
)

// ============================================================================
// SERVICE — Fetch → clean → build for a fixed pair of years
// ============================================================================

// Default years compared by the dashboard.
const (
	DefaultYearA = 2023
	DefaultYearB = 2024
)

// Caption describes the fixed query behind every chart.
const Caption = "Source: NOMIS API | Ages 16–64 | Measure: Absolute Value | Gender: Total"

// Fetcher returns the raw statistics table for one year.
type Fetcher interface {
	Fetch(ctx context.Context, year string) (*engine.RawTable, error)
}

// Config holds dashboard configuration.
type Config struct {
	YearA    int             // Bar chart year and share baseline
	YearB    int             // Pie chart year and share comparison
	LogoPath string          // Image served at /logo (empty = no logo)
	Options  []engine.Option // Chart colours
}

// DefaultConfig compares 2023 with 2024 and shows the DfE logo.
func DefaultConfig() Config {
	return Config{
		YearA:    DefaultYearA,
		YearB:    DefaultYearB,
		LogoPath: "Images/DfE.jpg",
	}
}

// Dashboard is one completed pipeline run.
type Dashboard struct {
	Request engine.Request
	TableA  engine.RegionTable
	TableB  engine.RegionTable
	Result  *engine.Result
}

// Service runs the pipeline.
type Service struct {
	fetcher Fetcher
	config  Config
}

// NewService creates a service. Zero years fall back to the defaults.
func NewService(fetcher Fetcher, cfg Config) *Service {
	if cfg.YearA == 0 {
		cfg.YearA = DefaultYearA
	}
	if cfg.YearB == 0 {
		cfg.YearB = DefaultYearB
	}
	return &Service{fetcher: fetcher, config: cfg}
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.config }

// Load fetches and cleans one year.
func (s *Service) Load(ctx context.Context, year int) (engine.RegionTable, error) {
	raw, err := s.fetcher.Fetch(ctx, strconv.Itoa(year))
	if err != nil {
		return engine.RegionTable{}, err
	}

	table, err := engine.FilterRegions(engine.NewTableView(raw))
	if err != nil {
		return engine.RegionTable{}, fmt.Errorf("cleaning %d: %w", year, err)
	}

	report := table.Report()
	log.Printf("🧹 popstat: %d → %d region rows of %d (%d dropped)",
		year, table.Len(), report.Scanned, report.Dropped)
	return table, nil
}

// Build fetches both years and builds every chart. Fetches run in order
// and the first failure halts the run.
func (s *Service) Build(ctx context.Context) (*Dashboard, error) {
	req := engine.Request{YearA: s.config.YearA, YearB: s.config.YearB}

	tableA, err := s.Load(ctx, req.YearA)
	if err != nil {
		return nil, err
	}
	tableB, err := s.Load(ctx, req.YearB)
	if err != nil {
		return nil, err
	}

	result, err := engine.Execute(req, tableA, tableB, s.config.Options...)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Request: req, TableA: tableA, TableB: tableB, Result: result}, nil
}

// ============================================================================
// ERROR MAPPING
// ============================================================================

// UserMessage turns a pipeline error into the text shown to the user.
func UserMessage(err error) string {
	var remote *nomis.RemoteError
	var network *nomis.NetworkError
	var shape *schema.ShapeError

	switch {
	case errors.As(err, &remote):
		return fmt.Sprintf("HTTP error from NOMIS: %v", err)
	case errors.As(err, &network):
		return fmt.Sprintf("Network error contacting NOMIS: %v", err)
	case errors.As(err, &shape):
		return fmt.Sprintf("Unexpected data from NOMIS: %v", err)
	case errors.Is(err, engine.ErrNoRegionData):
		return fmt.Sprintf("No regional population data available: %v", err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}

// StatusCode maps a pipeline error to an HTTP status.
func StatusCode(err error) int {
	var remote *nomis.RemoteError
	var network *nomis.NetworkError
	var shape *schema.ShapeError

	// Cancellation arrives wrapped in a NetworkError; check it first.
	switch {
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.As(err, &remote), errors.As(err, &shape):
		return http.StatusBadGateway
	case errors.As(err, &network):
		return http.StatusGatewayTimeout
	case errors.Is(err, engine.ErrNoRegionData):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
