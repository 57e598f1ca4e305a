package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bradpignatello/wellivian/internal/models"
	"github.com/bradpignatello/wellivian/internal/storage"
)

// HTTPClient implements DataSource by calling the Wellivian REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
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

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, start, end time.Time, _ int) ([]models.WorkoutRow, error) {
	body, err := c.get(ctx, "/api/v1/workouts", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var workouts []models.WorkoutRow
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) ExerciseHistory(ctx context.Context, _ int, exercise string, limit int) ([]storage.ExerciseOccurrence, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/exercises/"+url.PathEscape(exercise)+"/history", params)
	if err != nil {
		return nil, err
	}

	var history []storage.ExerciseOccurrence
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise history: %w", err)
	}
	return history, nil
}

func (c *HTTPClient) LastExerciseOccurrence(ctx context.Context, userID int, exercise string) (*storage.ExerciseOccurrence, error) {
	history, err := c.ExerciseHistory(ctx, userID, exercise, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[0], nil
}

func (c *HTTPClient) GetExerciseStats(ctx context.Context, _ int, exercise string) (*storage.ExerciseStats, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+url.PathEscape(exercise)+"/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.ExerciseStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise stats: %w", err)
	}
	return &stats, nil
}

func (c *HTTPClient) ListExerciseNames(ctx context.Context, _ int) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/exercises", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Logged []string `json:"logged"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return resp.Logged, nil
}

func (c *HTTPClient) QueryReadiness(ctx context.Context, start, end time.Time, _ int) ([]models.ReadinessRow, error) {
	body, err := c.get(ctx, "/api/v1/wearables/readiness", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var rows []models.ReadinessRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode readiness: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) QuerySleep(ctx context.Context, start, end time.Time, _ int) ([]models.SleepRow, error) {
	body, err := c.get(ctx, "/api/v1/wearables/sleep", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var rows []models.SleepRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode sleep: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) QueryActivity(ctx context.Context, start, end time.Time, _ int) ([]models.ActivityRow, error) {
	body, err := c.get(ctx, "/api/v1/wearables/activity", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var rows []models.ActivityRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode activity: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
