package engine

// ============================================================================
// POPSTAT ENGINE TYPES — Region tables, shares and render-ready output
// ============================================================================
// Every stage returns a new value. Nothing here mutates its input; cleaned
// tables hide their rows behind accessor methods that hand out copies.
//
// Dependency: engine imports only the schema package from this module.
// ============================================================================

// ============================================================================
// RAW TABLE — Delimited text table as delivered by the statistics API
// ============================================================================

// RawTable is one decoded response body: a header row plus string cells.
// Rows are padded to the header width by the decoder.
type RawTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ============================================================================
// REGION TABLE — Cleaned observations
// ============================================================================

// RegionObservation is one cleaned region-level row.
type RegionObservation struct {
	Year       int    `json:"year"`
	RegionCode string `json:"regionCode"`
	RegionName string `json:"regionName"`
	Population int64  `json:"population"`
}

// CleanReport counts what the cleaning pass saw and discarded.
type CleanReport struct {
	Scanned    int `json:"scanned"`    // Raw rows read
	RegionRows int `json:"regionRows"` // Rows with GEOGRAPHY_TYPE == "regions"
	Dropped    int `json:"dropped"`    // Region rows with a missing year or count
}

// RegionTable is an immutable table of cleaned observations.
type RegionTable struct {
	rows   []RegionObservation
	report CleanReport
}

// NewRegionTable copies rows into a new table.
func NewRegionTable(rows []RegionObservation) RegionTable {
	cp := make([]RegionObservation, len(rows))
	copy(cp, rows)
	return RegionTable{
		rows:   cp,
		report: CleanReport{Scanned: len(rows), RegionRows: len(rows)},
	}
}

func (t RegionTable) Len() int      { return len(t.rows) }
func (t RegionTable) IsEmpty() bool { return len(t.rows) == 0 }

// At returns the i-th observation.
func (t RegionTable) At(i int) RegionObservation { return t.rows[i] }

// Rows returns a copy of the observations.
func (t RegionTable) Rows() []RegionObservation {
	cp := make([]RegionObservation, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Report returns the cleaning counts that produced this table.
func (t RegionTable) Report() CleanReport { return t.report }

// ============================================================================
// SHARE TABLE — Two-year share comparison
// ============================================================================

// ShareRecord is one region's population share in two years, in percent,
// and the difference between them in percentage points.
type ShareRecord struct {
	Region      string  `json:"region"`
	ShareA      float64 `json:"shareA"`
	ShareB      float64 `json:"shareB"`
	PointChange float64 `json:"pointChange"`
}

// ShareTable holds share records sorted ascending by PointChange.
type ShareTable struct {
	YearA   int           `json:"yearA"`
	YearB   int           `json:"yearB"`
	Records []ShareRecord `json:"records"`
}

// ============================================================================
// RESULT — Render-ready output of Execute
// ============================================================================

// Request names the two years being compared.
type Request struct {
	YearA int `json:"yearA"` // Bar chart year and share baseline
	YearB int `json:"yearB"` // Pie chart year and share comparison
}

// Result is the engine's render-ready output for one dashboard build.
type Result struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
	Reply   string `json:"reply"`

	Bar         *ChartConfig `json:"bar,omitempty"`
	Pie         *ChartConfig `json:"pie,omitempty"`
	ShareChange *ChartConfig `json:"shareChange,omitempty"` // nil when shares are unavailable

	Tables  []*TableData `json:"tables,omitempty"`
	Share   *ShareTable  `json:"share,omitempty"`
	Summary *TextData    `json:"summary,omitempty"`

	Reports map[int]CleanReport `json:"reports,omitempty"`
	Errors  []string            `json:"errors,omitempty"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// Chart types produced by the builders.
const (
	ChartBar           = "bar"
	ChartPie           = "pie"
	ChartHorizontalBar = "hbar"
)

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`

	XLabelRotation float64         `json:"xLabelRotation,omitempty"` // degrees
	StartAngle     float64         `json:"startAngle,omitempty"`     // degrees, 90 = 12 o'clock
	Clockwise      bool            `json:"clockwise,omitempty"`
	LegendTitle    string          `json:"legendTitle,omitempty"`
	Legend         []string        `json:"legend,omitempty"`
	ReferenceLines []ReferenceLine `json:"referenceLines,omitempty"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. Color overrides the series
// colour for this point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ReferenceLine is a straight guide line across the plot.
type ReferenceLine struct {
	Axis  string  `json:"axis"` // "x" draws a vertical line at Value
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData summarises a share comparison in a few values.
type TextData struct {
	Value    string        `json:"value"`
	Period   string        `json:"period"`
	Count    int           `json:"count"`
	Increase *RegionChange `json:"increase,omitempty"`
	Decline  *RegionChange `json:"decline,omitempty"`
}

// RegionChange is one region's share movement.
type RegionChange struct {
	Region      string  `json:"region"`
	PointChange float64 `json:"pointChange"`
	Direction   string  `json:"direction"` // "increased", "decreased", "unchanged"
}
