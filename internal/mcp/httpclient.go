package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/pacer/internal/models"
	"github.com/claude/pacer/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the Pacer REST API. Used for
// remote MCP mode where the binary runs locally (stdio) but plans and
// history live on the server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d for %s: %s", resp.StatusCode, path, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ListPlans(ctx context.Context) ([]models.PlanSummary, error) {
	var plans []models.PlanSummary
	if err := c.getJSON(ctx, "/api/v1/plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *HTTPClient) GetPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	if err := c.getJSON(ctx, "/api/v1/plans/"+planID.String(), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *HTTPClient) QuerySessionHistory(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	path := "/api/v1/history?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *HTTPClient) GetHistoryStats(ctx context.Context) (*storage.HistoryStats, error) {
	var stats storage.HistoryStats
	if err := c.getJSON(ctx, "/api/v1/history/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
