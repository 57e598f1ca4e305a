// Package oura retrieves readiness, sleep, activity, and heart-rate data
// from the Oura Ring v2 REST API.
package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bradpignatello/wellivian/internal/models"
)

// DefaultBaseURL is the production Oura API endpoint.
const DefaultBaseURL = "https://api.ouraring.com"

// DayLayout is the date-only format used by Oura day fields and query params.
const DayLayout = "2006-01-02"

// Client calls the Oura v2 API with a personal access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty baseURL selects the production API.
func NewClient(baseURL, token string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// get performs an authorized GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("oura: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oura: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("oura: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oura: %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

func dayParams(day time.Time) url.Values {
	d := day.Format(DayLayout)
	v := url.Values{}
	v.Set("start_date", d)
	v.Set("end_date", d)
	return v
}

type readinessEnvelope struct {
	Data []struct {
		Day                       string  `json:"day"`
		Score                     int     `json:"score"`
		TemperatureDeviation      float64 `json:"temperature_deviation"`
		TemperatureTrendDeviation float64 `json:"temperature_trend_deviation"`
		Contributors              struct {
			HRVBalance       int `json:"hrv_balance"`
			RecoveryIndex    int `json:"recovery_index"`
			RestingHeartRate int `json:"resting_heart_rate"`
		} `json:"contributors"`
	} `json:"data"`
}

// GetReadiness fetches the readiness summary for a day.
func (c *Client) GetReadiness(ctx context.Context, day time.Time) (models.ReadinessRow, error) {
	body, err := c.get(ctx, "/v2/usercollection/daily_readiness", dayParams(day))
	if err != nil {
		return models.ReadinessRow{Day: day}, err
	}

	var env readinessEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return models.ReadinessRow{Day: day}, fmt.Errorf("oura: decode readiness: %w", err)
	}
	if len(env.Data) == 0 {
		return models.ReadinessRow{Day: day}, fmt.Errorf("oura: no readiness data for %s", day.Format(DayLayout))
	}

	// Most recent entry for the day.
	d := env.Data[len(env.Data)-1]
	return models.ReadinessRow{
		Day:                       day,
		Score:                     d.Score,
		TemperatureDeviation:      d.TemperatureDeviation,
		TemperatureTrendDeviation: d.TemperatureTrendDeviation,
		HRVBalance:                d.Contributors.HRVBalance,
		RecoveryIndex:             d.Contributors.RecoveryIndex,
		RestingHeartRate:          d.Contributors.RestingHeartRate,
	}, nil
}

type sleepEnvelope struct {
	Data []struct {
		Day                string `json:"day"`
		Score              int    `json:"score"`
		TotalSleepDuration int    `json:"total_sleep_duration"`
		Efficiency         int    `json:"efficiency"`
		RemSleepDuration   int    `json:"rem_sleep_duration"`
		DeepSleepDuration  int    `json:"deep_sleep_duration"`
		Latency            int    `json:"latency"`
	} `json:"data"`
}

// GetSleep fetches the sleep summary for a night.
func (c *Client) GetSleep(ctx context.Context, day time.Time) (models.SleepRow, error) {
	body, err := c.get(ctx, "/v2/usercollection/sleep", dayParams(day))
	if err != nil {
		return models.SleepRow{Day: day}, err
	}

	var env sleepEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return models.SleepRow{Day: day}, fmt.Errorf("oura: decode sleep: %w", err)
	}
	if len(env.Data) == 0 {
		return models.SleepRow{Day: day}, fmt.Errorf("oura: no sleep data for %s", day.Format(DayLayout))
	}

	d := env.Data[len(env.Data)-1]
	return models.SleepRow{
		Day:        day,
		Score:      d.Score,
		TotalSec:   d.TotalSleepDuration,
		Efficiency: d.Efficiency,
		RemSec:     d.RemSleepDuration,
		DeepSec:    d.DeepSleepDuration,
		LatencySec: d.Latency,
	}, nil
}

type activityEnvelope struct {
	Data []struct {
		Day            string `json:"day"`
		Score          int    `json:"score"`
		Steps          int    `json:"steps"`
		ActiveCalories int    `json:"active_calories"`
		TotalCalories  int    `json:"total_calories"`
		TargetCalories int    `json:"target_calories"`
	} `json:"data"`
}

// GetActivity fetches the activity summary for a day.
func (c *Client) GetActivity(ctx context.Context, day time.Time) (models.ActivityRow, error) {
	body, err := c.get(ctx, "/v2/usercollection/daily_activity", dayParams(day))
	if err != nil {
		return models.ActivityRow{Day: day}, err
	}

	var env activityEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return models.ActivityRow{Day: day}, fmt.Errorf("oura: decode activity: %w", err)
	}
	if len(env.Data) == 0 {
		return models.ActivityRow{Day: day}, fmt.Errorf("oura: no activity data for %s", day.Format(DayLayout))
	}

	d := env.Data[len(env.Data)-1]
	return models.ActivityRow{
		Day:            day,
		Score:          d.Score,
		Steps:          d.Steps,
		ActiveCalories: d.ActiveCalories,
		TotalCalories:  d.TotalCalories,
		TargetCalories: d.TargetCalories,
	}, nil
}

type heartRateEnvelope struct {
	Data []struct {
		BPM       int       `json:"bpm"`
		Source    string    `json:"source"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"data"`
}

// GetHeartRate fetches heart-rate samples for a whole day.
func (c *Client) GetHeartRate(ctx context.Context, day time.Time) ([]models.HeartRateRow, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	params := url.Values{}
	params.Set("start_datetime", start.Format(time.RFC3339))
	params.Set("end_datetime", start.AddDate(0, 0, 1).Format(time.RFC3339))

	body, err := c.get(ctx, "/v2/usercollection/heartrate", params)
	if err != nil {
		return nil, err
	}

	var env heartRateEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("oura: decode heartrate: %w", err)
	}

	rows := make([]models.HeartRateRow, 0, len(env.Data))
	for _, d := range env.Data {
		rows = append(rows, models.HeartRateRow{
			Time:   d.Timestamp,
			BPM:    d.BPM,
			Source: d.Source,
		})
	}
	return rows, nil
}
