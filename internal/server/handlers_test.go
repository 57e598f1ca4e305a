package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bradpignatello/wellivian/internal/ingest"
	"github.com/bradpignatello/wellivian/internal/pairing"
)

func testServer() *Server {
	return New(nil, nil, nil, nil, "secret", slog.Default())
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale client is attached.
func TestHandleMeDefault(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		UserID      int    `json:"user_id"`
		Login       string `json:"login"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.UserID != 1 {
		t.Errorf("user_id = %d, want 1", body.UserID)
	}
	if body.Login != "local" {
		t.Errorf("login = %q, want %q", body.Login, "local")
	}
}

// TestHandleMeTailscaleUser verifies the endpoint reflects the identity
// set in context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	ctx = context.WithValue(ctx, userIDKey, 7)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var body struct {
		UserID int    `json:"user_id"`
		Login  string `json:"login"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Login != "alice@example.com" || body.UserID != 7 {
		t.Errorf("me = %+v", body)
	}
}

// TestHandlePairing verifies the classification endpoint end to end
// through the router.
func TestHandlePairing(t *testing.T) {
	s := testServer()

	tests := []struct {
		a, b string
		want pairing.Rating
	}{
		{"Bench Press", "Kroc Rows", pairing.Great},
		{"Bench Press", "Incline DB Press", pairing.Avoid},
		{"Bench Press", "Squats", pairing.Great},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/pairing?a="+strings.ReplaceAll(tc.a, " ", "%20")+"&b="+strings.ReplaceAll(tc.b, " ", "%20"), nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body struct {
			Rating pairing.Rating `json:"rating"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body.Rating != tc.want {
			t.Errorf("pairing(%q, %q) = %q, want %q", tc.a, tc.b, body.Rating, tc.want)
		}
	}
}

// TestHandlePairingMissingParams verifies both params are required.
func TestHandlePairingMissingParams(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pairing?a=Bench%20Press", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleExercisePairings verifies every other catalog exercise gets a
// rating.
func TestHandleExercisePairings(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises/Bench%20Press/pairings", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rated []struct {
		Exercise string         `json:"exercise"`
		Rating   pairing.Rating `json:"rating"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&rated); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(rated) != len(pairing.Catalog)-1 {
		t.Errorf("got %d ratings, want %d", len(rated), len(pairing.Catalog)-1)
	}
	for _, r := range rated {
		if r.Exercise == "Bench Press" {
			t.Error("exercise should not be rated against itself")
		}
	}
}

// TestIngestRequiresAPIKey verifies the sync endpoint is gated.
func TestIngestRequiresAPIKey(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/oura", strings.NewReader(`{"days":[]}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/ingest/oura", strings.NewReader(`{"days":[]}`))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}
}

// TestHandleChatNotConfigured verifies chat returns 503 without a coach
// client.
func TestHandleChatNotConfigured(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
		strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

// TestHandleWearableSummaryNotConfigured verifies the live summary returns
// 503 without a wearable client.
func TestHandleWearableSummaryNotConfigured(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/summary", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

// TestHandleCreateWorkoutValidation verifies bad bodies are rejected
// before touching storage.
func TestHandleCreateWorkoutValidation(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/workouts", strings.NewReader(`{"exercises":[]}`))
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no exercises: status = %d, want 400", rec.Code)
	}
}

// TestHandleGetWorkoutBadID verifies a malformed UUID is rejected.
func TestHandleGetWorkoutBadID(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleWearableRangeUnknownScope verifies unknown scopes 404.
func TestHandleWearableRangeUnknownScope(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/bloodwork", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestFinalImportLog verifies a sync's outcome is captured in the log row:
// result counters and duration on success, the error message on failure.
func TestFinalImportLog(t *testing.T) {
	result := &ingest.Result{
		DaysReceived:      3,
		ReadinessUpserts:  3,
		SleepUpserts:      2,
		ActivityUpserts:   3,
		HeartRateInserted: 1440,
	}

	entry := finalImportLog(result, nil, 250*time.Millisecond)
	if entry.Status != "success" {
		t.Errorf("status = %q, want success", entry.Status)
	}
	if entry.DaysReceived != 3 || entry.SleepUpserts != 2 || entry.HeartRateInserted != 1440 {
		t.Errorf("counters = %+v", entry)
	}
	if entry.DurationMs == nil || *entry.DurationMs != 250 {
		t.Errorf("duration = %v, want 250", entry.DurationMs)
	}
	if entry.ErrorMessage != nil {
		t.Errorf("error message = %q, want nil", *entry.ErrorMessage)
	}

	entry = finalImportLog(nil, errors.New("upsert failed"), time.Second)
	if entry.Status != "error" {
		t.Errorf("status = %q, want error", entry.Status)
	}
	if entry.ErrorMessage == nil || *entry.ErrorMessage != "upsert failed" {
		t.Errorf("error message = %v, want upsert failed", entry.ErrorMessage)
	}
	if entry.DaysReceived != 0 {
		t.Errorf("days received = %d, want 0 on nil result", entry.DaysReceived)
	}
}
