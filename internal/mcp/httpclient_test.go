package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bradpignatello/wellivian/internal/models"
	"github.com/bradpignatello/wellivian/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestQueryWorkouts verifies the HTTP client sends the time range and
// parses the JSON array response.
func TestQueryWorkouts(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got == "" {
				t.Error("start param missing")
			}
			writeTestJSON(t, w, []models.WorkoutRow{
				{ID: id, UserID: 1, WorkoutDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), DurationSec: 3600},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	workouts, err := client.QueryWorkouts(context.Background(), start, end, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	if workouts[0].ID != id || workouts[0].DurationSec != 3600 {
		t.Errorf("workout = %+v", workouts[0])
	}
}

// TestExerciseHistory verifies the exercise name is path-escaped and the
// limit param is sent.
func TestExerciseHistory(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/Bench Press/history": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "5" {
				t.Errorf("limit=%q, want 5", got)
			}
			writeTestJSON(t, w, []storage.ExerciseOccurrence{
				{WorkoutDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
					Sets: []models.WorkoutSetRow{{SetNumber: 1, Weight: 185, Reps: 5}}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	history, err := client.ExerciseHistory(context.Background(), 1, "Bench Press", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || len(history[0].Sets) != 1 {
		t.Fatalf("history = %+v", history)
	}
	if history[0].Sets[0].Weight != 185 {
		t.Errorf("weight = %v, want 185", history[0].Sets[0].Weight)
	}
}

// TestLastExerciseOccurrenceEmpty verifies a nil result for an exercise
// with no history.
func TestLastExerciseOccurrenceEmpty(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/Face Pulls/history": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []storage.ExerciseOccurrence{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	last, err := client.LastExerciseOccurrence(context.Background(), 1, "Face Pulls")
	if err != nil {
		t.Fatal(err)
	}
	if last != nil {
		t.Errorf("last = %+v, want nil", last)
	}
}

// TestGetExerciseStats verifies the single-struct response path.
func TestGetExerciseStats(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/Squats/stats": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.ExerciseStats{
				Exercise: "Squats", TotalWorkouts: 12, MaxWeight: 315,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	stats, err := client.GetExerciseStats(context.Background(), 1, "Squats")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalWorkouts != 12 || stats.MaxWeight != 315 {
		t.Errorf("stats = %+v", stats)
	}
}

// TestListExerciseNames verifies only the logged names are extracted from
// the combined catalog response.
func TestListExerciseNames(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]any{
				"catalog": []map[string]string{{"name": "Bench Press"}},
				"logged":  []string{"Bench Press", "Squats"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	names, err := client.ListExerciseNames(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[1] != "Squats" {
		t.Errorf("names = %v", names)
	}
}

// TestQueryReadiness verifies the wearable scope path and decoding.
func TestQueryReadiness(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/wearables/readiness": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.ReadinessRow{
				{Day: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Score: 82, HRVBalance: 85},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	rows, err := client.QueryReadiness(context.Background(),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Score != 82 {
		t.Errorf("rows = %+v", rows)
	}
}

// TestGetDataStats verifies the aggregate stats endpoint.
func TestGetDataStats(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.DataStats{TotalWorkouts: 200, TotalSets: 1800})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	stats, err := client.GetDataStats(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalWorkouts != 200 || stats.TotalSets != 1800 {
		t.Errorf("stats = %+v", stats)
	}
}

// TestHTTPClientError verifies non-200 responses surface as errors.
func TestHTTPClientError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	if _, err := client.GetDataStats(context.Background(), 1); err == nil {
		t.Error("expected error from 500 response")
	}
}
