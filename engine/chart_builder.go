package engine

import (
	"fmt"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from cleaned tables
// ============================================================================
// Three independent builders, no shared state. Each returns nil when there
// is nothing to draw; callers omit the chart instead of failing.
// ============================================================================

// Axis and legend labels shared with the renderers.
const (
	LabelRegion          = "Region"
	LabelPopulationMil   = "Count of population (millions)"
	LabelPointChange     = "Change (percentage points)"
	LabelLegendPie       = "Region (Population)"
	barLabelRotation     = 45
	pieStartAngleDegrees = 90
)

// BuildRegionBarChart draws one bar per region, largest population first,
// scaled to millions.
func BuildRegionBarChart(t RegionTable, year int, opts ...Option) *ChartConfig {
	if t.IsEmpty() {
		return nil
	}
	cfg := applyOptions(opts)

	rows := SortByPopulationDesc(t)
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{
			Label: r.RegionName,
			Value: ToMillions(r.Population),
		})
	}

	return &ChartConfig{
		ChartType:      ChartBar,
		Title:          fmt.Sprintf("Population by Region (%d)", year),
		XAxis:          LabelRegion,
		YAxis:          LabelPopulationMil,
		Series:         []ChartSeries{{Name: fmt.Sprintf("%d", year), Data: points, Color: cfg.BarColor}},
		Colors:         []string{cfg.BarColor},
		ShowGrid:       true,
		XLabelRotation: barLabelRotation,
	}
}

// BuildRegionPieChart draws one wedge per region, largest first, starting
// at 12 o'clock and running clockwise. Wedges carry no labels; the legend
// lists "region: count" in wedge order.
func BuildRegionPieChart(t RegionTable, year int, opts ...Option) *ChartConfig {
	if t.IsEmpty() || SumPopulation(t) == 0 {
		return nil
	}
	cfg := applyOptions(opts)

	rows := SortByPopulationDesc(t)
	points := make([]ChartPoint, 0, len(rows))
	legend := make([]string, 0, len(rows))
	colors := make([]string, 0, len(rows))
	for i, r := range rows {
		color := colorAt(cfg.Palette, i)
		points = append(points, ChartPoint{
			Label: r.RegionName,
			Value: float64(r.Population),
			Color: color,
		})
		legend = append(legend, fmt.Sprintf("%s: %s", r.RegionName, FormatCount(r.Population)))
		colors = append(colors, color)
	}

	return &ChartConfig{
		ChartType:   ChartPie,
		Title:       fmt.Sprintf("Population by Region (%d)", year),
		Series:      []ChartSeries{{Name: fmt.Sprintf("%d", year), Data: points}},
		Colors:      colors,
		ShowLegend:  true,
		StartAngle:  pieStartAngleDegrees,
		Clockwise:   true,
		LegendTitle: LabelLegendPie,
		Legend:      legend,
	}
}

// BuildShareChangeChart draws one horizontal bar per region in share-table
// order (largest decline first). Returns nil for an absent share table.
func BuildShareChangeChart(s *ShareTable, opts ...Option) *ChartConfig {
	if s == nil || len(s.Records) == 0 {
		return nil
	}
	cfg := applyOptions(opts)

	points := make([]ChartPoint, 0, len(s.Records))
	for _, r := range s.Records {
		color := cfg.IncreaseColor
		if r.PointChange < 0 {
			color = cfg.DecreaseColor
		}
		points = append(points, ChartPoint{
			Label: r.Region,
			Value: r.PointChange,
			Color: color,
		})
	}

	return &ChartConfig{
		ChartType: ChartHorizontalBar,
		Title:     fmt.Sprintf("Change in Population Share by Region (%d → %d)", s.YearA, s.YearB),
		XAxis:     LabelPointChange,
		YAxis:     LabelRegion,
		Series:    []ChartSeries{{Name: "pp change", Data: points}},
		Colors:    []string{cfg.IncreaseColor, cfg.DecreaseColor},
		ShowGrid:  true,
		ReferenceLines: []ReferenceLine{
			{Axis: "x", Value: 0, Color: cfg.ZeroLineColor, Width: 1},
		},
	}
}
