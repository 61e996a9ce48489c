package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/ironpulse/internal/metrics"
	"github.com/claude/ironpulse/internal/models"
)

// HTTPClient implements DataSource by calling the IronPulse REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the journal lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// get fetches path and decodes the JSON body into out.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) CurrentProgram(ctx context.Context) (models.Program, error) {
	var p models.Program
	err := c.get(ctx, "/api/v1/program", nil, &p)
	return p, err
}

func (c *HTTPClient) Catalog(ctx context.Context) (metrics.Catalog, error) {
	var cat metrics.Catalog
	err := c.get(ctx, "/api/v1/exercises", nil, &cat)
	return cat, err
}

func (c *HTTPClient) ExerciseHistory(ctx context.Context, key string) ([]metrics.HistoryEntry, error) {
	var history []metrics.HistoryEntry
	err := c.get(ctx, "/api/v1/exercises/"+url.PathEscape(key)+"/history", nil, &history)
	return history, err
}

func (c *HTTPClient) Progress(ctx context.Context, key string) (metrics.ProgressStats, error) {
	var stats metrics.ProgressStats
	err := c.get(ctx, "/api/v1/exercises/"+url.PathEscape(key)+"/progress", nil, &stats)
	return stats, err
}

func (c *HTTPClient) Sessions(ctx context.Context, f metrics.Filter) (metrics.Report, error) {
	params := url.Values{}
	for name, v := range map[string]string{"from": f.From, "to": f.To, "exercise": f.ExerciseKey, "group": f.MuscleGroup} {
		if v != "" {
			params.Set(name, v)
		}
	}
	var report metrics.Report
	err := c.get(ctx, "/api/v1/sessions", params, &report)
	return report, err
}

func (c *HTTPClient) Planned(ctx context.Context) ([]models.PlannedEntry, error) {
	var planned []models.PlannedEntry
	err := c.get(ctx, "/api/v1/planned", nil, &planned)
	return planned, err
}

func (c *HTTPClient) Summary(ctx context.Context) (metrics.Summary, error) {
	var summary metrics.Summary
	err := c.get(ctx, "/api/v1/summary", nil, &summary)
	return summary, err
}
