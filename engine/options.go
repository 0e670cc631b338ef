package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for the chart builders and Execute()
// ============================================================================

// Option configures builder behavior via functional options pattern.
type Option func(*config)

type config struct {
	Palette       []string // wedge colours, cycled
	BarColor      string   // single colour for the region bar chart
	IncreaseColor string   // share change >= 0
	DecreaseColor string   // share change < 0
	ZeroLineColor string
}

// Default color palette for pie wedges.
var defaultColors = []string{
	"#4C78A8", "#F58518", "#54A24B", "#E45756", "#72B7B2",
	"#EECA3B", "#B279A2", "#FF9DA6", "#9D755D", "#BAB0AC",
	"#1F77B4", "#2CA02C",
}

// WithPalette overrides the pie wedge colours.
func WithPalette(colors ...string) Option {
	return func(c *config) {
		if len(colors) > 0 {
			c.Palette = colors
		}
	}
}

// WithBarColor sets the colour of the region bar chart.
func WithBarColor(color string) Option {
	return func(c *config) {
		c.BarColor = color
	}
}

// WithShareColors sets the colours of non-negative and negative share
// changes.
func WithShareColors(increase, decrease string) Option {
	return func(c *config) {
		c.IncreaseColor = increase
		c.DecreaseColor = decrease
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Palette:       defaultColors,
		BarColor:      "#1F77B4",
		IncreaseColor: "#72B7B2",
		DecreaseColor: "#E45756",
		ZeroLineColor: "#808080",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func colorAt(palette []string, i int) string {
	return palette[i%len(palette)]
}
