package nomis

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// NOMIS CONFIG — Endpoint, fixed query parameters, timeout, cache
// ============================================================================

// DefaultBaseURL is the NOMIS API root.
const DefaultBaseURL = "https://www.nomisweb.co.uk/api/v01"

// DatasetPopulationEstimates is the population estimates dataset id.
const DatasetPopulationEstimates = "NM_2002_1"

// DefaultTimeout bounds one fetch, connection and body included.
const DefaultTimeout = 60 * time.Second

// Query parameter names recognised by the dataset endpoint.
const (
	ParamTime     = "time"
	ParamMeasures = "measures"
	ParamGender   = "gender"
	ParamAge      = "c_age"
)

// Codes for the fixed query parameters.
const (
	MeasureValue   = 20100 // numeric value
	MeasurePercent = 20301 // percentage of the geography total
	GenderTotal    = 0     // males and females combined
	AgeAll         = 0     // all ages
	AgeBand16To64  = 203   // aged 16 to 64
)

// Query holds the parameters fixed for every fetch; only the year varies.
type Query struct {
	Dataset  string `json:"dataset"`
	Measures int    `json:"measures"`
	Gender   int    `json:"gender"`
	Age      int    `json:"c_age"`
}

// DefaultQuery returns numeric values for both genders aged 16 to 64.
func DefaultQuery() Query {
	return Query{
		Dataset:  DatasetPopulationEstimates,
		Measures: MeasureValue,
		Gender:   GenderTotal,
		Age:      AgeBand16To64,
	}
}

// Values returns the URL query for one year.
func (q Query) Values(year string) url.Values {
	v := url.Values{}
	v.Set(ParamTime, year)
	v.Set(ParamMeasures, strconv.Itoa(q.Measures))
	v.Set(ParamGender, strconv.Itoa(q.Gender))
	v.Set(ParamAge, strconv.Itoa(q.Age))
	return v
}

// Key returns the cache key of one year under this query.
func (q Query) Key(year string) CacheKey {
	return CacheKey{
		Dataset:  q.Dataset,
		Time:     year,
		Measures: q.Measures,
		Gender:   q.Gender,
		Age:      q.Age,
	}
}

// Config holds client configuration.
type Config struct {
	BaseURL    string        // API root (empty = DefaultBaseURL)
	Query      Query         // Fixed query parameters
	Timeout    time.Duration // Per-fetch timeout (0 = DefaultTimeout)
	Cache      Cache         // nil = NewMemoryCache()
	HTTPClient *http.Client  // Override transport (tests); Timeout still applies
}

// DefaultConfig returns a Config with the NOMIS defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Query:   DefaultQuery(),
		Timeout: DefaultTimeout,
	}
}

// DatasetURL returns the CSV endpoint of the configured dataset.
func (c Config) DatasetURL() string {
	return fmt.Sprintf("%s/dataset/%s.data.csv", strings.TrimRight(c.BaseURL, "/"), c.Query.Dataset)
}
