package sync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bradpignatello/wellivian/internal/models"
)

// TestStateDB verifies day tracking across open/close cycles.
func TestStateDB(t *testing.T) {
	dir := t.TempDir()

	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB() error: %v", err)
	}

	done, err := state.IsComplete("2026-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("fresh db should have no complete days")
	}

	if err := state.MarkSynced("2026-03-09", true); err != nil {
		t.Fatal(err)
	}
	if err := state.MarkSynced("2026-03-10", false); err != nil {
		t.Fatal(err)
	}

	if err := state.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen: state must persist.
	state, err = OpenStateDB(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	done, err = state.IsComplete("2026-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("2026-03-09 should be complete after reopen")
	}

	done, err = state.IsComplete("2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("2026-03-10 was synced incomplete, should not be complete")
	}
}

// TestMarkSyncedUpgrade verifies an incomplete day can later be marked
// complete.
func TestMarkSyncedUpgrade(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	if err := state.MarkSynced("2026-03-10", false); err != nil {
		t.Fatal(err)
	}
	if err := state.MarkSynced("2026-03-10", true); err != nil {
		t.Fatal(err)
	}

	done, err := state.IsComplete("2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("day should be complete after upgrade")
	}
}

// TestSendPayload verifies the API key header and result decoding.
func TestSendPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ingest/oura" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		var payload models.OuraPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if len(payload.Days) != 1 || payload.Days[0].Day != "2026-03-10" {
			t.Errorf("payload = %+v", payload)
		}
		fmt.Fprint(w, `{"days_received":1,"readiness_upserts":1}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	result, err := client.SendPayload(models.OuraPayload{
		Days: []models.OuraDay{{Day: "2026-03-10", Readiness: &models.ReadinessRow{Score: 82}}},
	})
	if err != nil {
		t.Fatalf("SendPayload() error: %v", err)
	}
	if result.DaysReceived != 1 || result.ReadinessUpserts != 1 {
		t.Errorf("result = %+v", result)
	}
}

// TestSendPayloadRetries verifies transient failures are retried and the
// eventual success is returned.
func TestSendPayloadRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"days_received":1}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	result, err := client.SendPayload(models.OuraPayload{Days: []models.OuraDay{{Day: "2026-03-10"}}})
	if err != nil {
		t.Fatalf("SendPayload() error after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if result.DaysReceived != 1 {
		t.Errorf("result = %+v", result)
	}
}

// TestSendPayloadGivesUp verifies a persistent failure surfaces after 3
// attempts.
func TestSendPayloadGivesUp(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong")
	if _, err := client.SendPayload(models.OuraPayload{Days: []models.OuraDay{{Day: "2026-03-10"}}}); err == nil {
		t.Error("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
