// Package chartdata fetches resolved chart results from the upstream
// statistics service.
//
// Chart results arrive fully computed: the layout engine never derives
// numbers from raw events, it only needs each chart's payload (text,
// table rows, series points, KPI value, image ratio) to judge fit. The
// client caches results and retries transient failures; a static source
// serves tests and offline CLI runs from a JSON file.
package chartdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/statboard/statboard/pkg/cache"
	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/report"
)

const httpTimeout = 10 * time.Second

// Source yields chart results by id.
type Source interface {
	FetchChart(ctx context.Context, chartID string) (report.ChartResult, error)
}

// =============================================================================
// HTTP Client
// =============================================================================

// Client fetches chart results over HTTP with caching and retry.
type Client struct {
	http    *http.Client
	baseURL string
	cache   cache.Cache
	keyer   cache.Keyer
	headers map[string]string
}

// NewClient creates a Client against baseURL. Pass a NullCache to disable
// caching and nil for headers if no default headers are needed.
func NewClient(baseURL string, c cache.Cache, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		headers: headers,
	}
}

// FetchChart retrieves one chart result, from cache when fresh.
func (c *Client) FetchChart(ctx context.Context, chartID string) (report.ChartResult, error) {
	if err := errors.ValidateID(chartID); err != nil {
		return report.ChartResult{}, err
	}

	key := c.keyer.ChartKey(chartID)
	if data, hit, _ := c.cache.Get(ctx, key); hit {
		var res report.ChartResult
		if err := json.Unmarshal(data, &res); err == nil {
			return res, nil
		}
		// Corrupt entry: drop it and refetch.
		_ = c.cache.Delete(ctx, key)
	}

	var res report.ChartResult
	url := fmt.Sprintf("%s/charts/%s/result", c.baseURL, chartID)
	err := cache.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, url, &res)
	})
	if err != nil {
		return report.ChartResult{}, err
	}

	if data, err := json.Marshal(res); err == nil {
		_ = c.cache.Set(ctx, key, data, cache.ChartTTL)
	}
	return res, nil
}

// get performs one GET and decodes the JSON body. Transient failures are
// marked retryable so the backoff loop attempts again.
func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(v)
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeChartNotFound, "chart result not found at %s", url)
	case resp.StatusCode >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode))
	default:
		return errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}
}

// Ensure Client implements Source.
var _ Source = (*Client)(nil)

// =============================================================================
// Static Source
// =============================================================================

// StaticSource serves chart results from memory, for tests and offline
// CLI runs.
type StaticSource map[string]report.ChartResult

// FetchChart retrieves a chart result from the map.
func (s StaticSource) FetchChart(ctx context.Context, chartID string) (report.ChartResult, error) {
	res, ok := s[chartID]
	if !ok {
		return report.ChartResult{}, errors.New(errors.ErrCodeChartNotFound, "chart %s not found", chartID)
	}
	return res, nil
}

// LoadStatic reads a StaticSource from a JSON file holding a list of
// chart results.
func LoadStatic(path string) (StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var results []report.ChartResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make(StaticSource, len(results))
	for _, res := range results {
		out[res.ChartID] = res
	}
	return out, nil
}

// Ensure StaticSource implements Source.
var _ Source = (StaticSource)(nil)

// =============================================================================
// Hydration
// =============================================================================

// Hydrate replaces every cell's payload with the current chart result for
// its chart id, keeping the author-set width. The report is modified in
// place; ids and block structure never change.
func Hydrate(ctx context.Context, src Source, rep *report.Report) error {
	for bi := range rep.Blocks {
		for ci := range rep.Blocks[bi].Cells {
			cell := &rep.Blocks[bi].Cells[ci]
			res, err := src.FetchChart(ctx, cell.ChartID)
			if err != nil {
				return fmt.Errorf("block %s: %w", rep.Blocks[bi].ID, err)
			}
			*cell = report.NewCell(res, cell.Width)
		}
	}
	return nil
}
