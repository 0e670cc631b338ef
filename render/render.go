// Package render draws engine.ChartConfig values as PNG images.
//
// Vertical bars and pies go through go-chart; horizontal bars go through
// gonum/plot, which supports them natively.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spektr-org/popstat/engine"
)

// ErrNoChart is returned for a nil or empty chart.
var ErrNoChart = errors.New("nothing to render")

// ContentType of everything this package writes.
const ContentType = "image/png"

// PNG renders cfg to w.
func PNG(w io.Writer, cfg *engine.ChartConfig) error {
	if cfg == nil || len(cfg.Series) == 0 || len(cfg.Series[0].Data) == 0 {
		return ErrNoChart
	}
	switch cfg.ChartType {
	case engine.ChartBar:
		return renderBar(w, cfg)
	case engine.ChartPie:
		return renderPie(w, cfg)
	case engine.ChartHorizontalBar:
		return renderHorizontalBar(w, cfg)
	default:
		return fmt.Errorf("unsupported chart type %q", cfg.ChartType)
	}
}

// ============================================================================
// BAR — go-chart
// ============================================================================

func renderBar(w io.Writer, cfg *engine.ChartConfig) error {
	series := cfg.Series[0]

	maxValue := 0.0
	bars := make([]chart.Value, 0, len(series.Data))
	for i, p := range series.Data {
		fill := toDrawing(pointColor(p.Color, series.Color, cfg.Colors, i))
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
		maxValue = math.Max(maxValue, p.Value)
	}
	if maxValue == 0 {
		maxValue = 1
	}

	bc := chart.BarChart{
		Title:    cfg.Title,
		Width:    1000,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{TextRotationDegrees: cfg.XLabelRotation},
		YAxis: chart.YAxis{
			Name:  cfg.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

// ============================================================================
// PIE — go-chart, legend drawn beside the pie
// ============================================================================

func renderPie(w io.Writer, cfg *engine.ChartConfig) error {
	series := cfg.Series[0]

	values := make([]chart.Value, 0, len(series.Data))
	for i, p := range series.Data {
		fill := toDrawing(pointColor(p.Color, "", cfg.Colors, i))
		values = append(values, chart.Value{
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		})
	}

	pie := chart.PieChart{
		Title:  cfg.Title,
		Width:  1100,
		Height: 700,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 420, Bottom: 20},
		},
		Values:   values,
		Elements: []chart.Renderable{pieLegend(cfg)},
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// pieLegend lists the legend entries with colour swatches to the right of
// the pie.
func pieLegend(cfg *engine.ChartConfig) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		if !cfg.ShowLegend || len(cfg.Legend) == 0 {
			return
		}
		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}

		x := canvas.Right + 40
		y := canvas.Top + 12

		if cfg.LegendTitle != "" {
			r.SetFontColor(drawing.ColorBlack)
			r.SetFontSize(12)
			r.Text(cfg.LegendTitle, x, y)
			y += 24
		}

		r.SetFontSize(10)
		for i, label := range cfg.Legend {
			swatch := toDrawing(pointColor("", "", cfg.Colors, i))
			r.SetFillColor(swatch)
			r.SetStrokeColor(swatch)
			r.SetStrokeWidth(1)
			r.MoveTo(x, y-10)
			r.LineTo(x+12, y-10)
			r.LineTo(x+12, y+2)
			r.LineTo(x, y+2)
			r.Close()
			r.FillStroke()

			r.SetFontColor(drawing.ColorBlack)
			r.Text(label, x+20, y)
			y += 20
		}
	}
}

// ============================================================================
// HORIZONTAL BAR — gonum/plot
// ============================================================================

func renderHorizontalBar(w io.Writer, cfg *engine.ChartConfig) error {
	series := cfg.Series[0]

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XAxis
	p.Y.Label.Text = cfg.YAxis

	names := make([]string, len(series.Data))
	for i, pt := range series.Data {
		bars, err := plotter.NewBarChart(plotter.Values{pt.Value}, vg.Points(16))
		if err != nil {
			return fmt.Errorf("failed to build bar for %s: %w", pt.Label, err)
		}
		bars.Horizontal = true
		bars.XMin = float64(i)
		bars.Color = pointColor(pt.Color, series.Color, cfg.Colors, i)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		names[i] = pt.Label
	}
	p.NominalY(names...)

	if cfg.ShowGrid {
		p.Add(plotter.NewGrid())
	}

	for _, ref := range cfg.ReferenceLines {
		if ref.Axis != "x" {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{
			{X: ref.Value, Y: -0.5},
			{X: ref.Value, Y: float64(len(series.Data)) - 0.5},
		})
		if err != nil {
			return fmt.Errorf("failed to build reference line: %w", err)
		}
		line.LineStyle.Color = parseHex(ref.Color)
		line.LineStyle.Width = vg.Points(ref.Width)
		p.Add(line)
	}

	canvas := vgimg.New(10*vg.Inch, 6*vg.Inch)
	p.Draw(draw.New(canvas))
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write share change chart: %w", err)
	}
	return nil
}
