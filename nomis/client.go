package nomis

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/spektr-org/popstat/engine"
	"github.com/spektr-org/popstat/helpers"
)

// ============================================================================
// NOMIS CLIENT — Fetches one year of population estimates as a raw table
// ============================================================================
// This is the ONLY package that makes network calls.
//
//   - One GET per (dataset, year, fixed parameters); repeats are served
//     from the cache
//   - Concurrent fetches of the same key share one request
//   - No retries: failures go straight back to the caller
// ============================================================================

// Client fetches population tables from the NOMIS API.
type Client struct {
	config Config
	client *http.Client
	cache  Cache
	flight singleflight.Group
}

// New creates a client, filling unset Config fields with defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Query.Dataset == "" {
		cfg.Query = DefaultQuery()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Cache == nil {
		cfg.Cache = NewMemoryCache()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = cfg.Timeout
		}
		httpClient = &clone
	}

	return &Client{
		config: cfg,
		client: httpClient,
		cache:  cfg.Cache,
	}
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.config }

// URL returns the full request URL for one year.
func (c *Client) URL(year string) string {
	return c.config.DatasetURL() + "?" + c.config.Query.Values(year).Encode()
}

// Fetch returns the raw table for one year.
//
// Errors are *NetworkError when no response arrived and *RemoteError for a
// non-2xx status or an undecodable body. Each call returns a new table.
//
// Concurrent fetches of one key share a download that no single caller's
// cancellation can stop; a caller whose ctx ends stops waiting with a
// *NetworkError wrapping ctx.Err().
func (c *Client) Fetch(ctx context.Context, year string) (*engine.RawTable, error) {
	year = strings.TrimSpace(year)
	key := c.config.Query.Key(year)

	if body, ok := c.cache.Get(key); ok {
		log.Printf("📦 popstat: cache hit for %s", key)
		return c.decode(year, body)
	}

	// Set only when this caller's function runs the flight; read after the
	// result arrives on the channel.
	var owned *engine.RawTable

	ch := c.flight.DoChan(key.String(), func() (interface{}, error) {
		// Another flight may have filled the cache since the check above.
		if body, ok := c.cache.Get(key); ok {
			return body, nil
		}

		dl, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.client.Timeout)
		defer cancel()

		body, err := c.download(dl, year)
		if err != nil {
			return nil, err
		}
		table, err := helpers.ParseRawCSV(body)
		if err != nil {
			return nil, &RemoteError{URL: c.URL(year), StatusCode: http.StatusOK, Body: truncate(string(body), 200), Err: err}
		}
		c.cache.Add(key, body)
		owned = table
		return body, nil
	})

	select {
	case <-ctx.Done():
		log.Printf("⏹️ popstat: stopped waiting for %s: %v", key, ctx.Err())
		return nil, &NetworkError{URL: c.URL(year), Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			log.Printf("❌ popstat: fetch %s failed: %v", key, res.Err)
			return nil, res.Err
		}
		if owned != nil {
			return owned, nil
		}
		if res.Shared {
			log.Printf("🔗 popstat: shared in-flight fetch for %s", key)
		}
		return c.decode(year, res.Val.([]byte))
	}
}

func (c *Client) decode(year string, body []byte) (*engine.RawTable, error) {
	table, err := helpers.ParseRawCSV(body)
	if err != nil {
		return nil, &RemoteError{URL: c.URL(year), StatusCode: http.StatusOK, Body: truncate(string(body), 200), Err: err}
	}
	return table, nil
}

// download performs the GET and returns the body of a 2xx response.
func (c *Client) download(ctx context.Context, year string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.DatasetURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.URL.RawQuery = c.config.Query.Values(year).Encode()
	req.Header.Set("Accept", "text/csv")

	log.Printf("📥 popstat: GET %s", req.URL)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: req.URL.String(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{URL: req.URL.String(), StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	log.Printf("✅ popstat: %d bytes for %s=%s in %v", len(body), ParamTime, year, time.Since(start).Round(time.Millisecond))
	return body, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
