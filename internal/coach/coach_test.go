package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}

// TestComplete verifies request headers, body shape, and text assembly.
func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "key-123" {
			t.Errorf("x-api-key = %q, want key-123", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("anthropic-version header missing")
		}
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "What should I pair with bench?" {
			t.Errorf("messages = %+v", req.Messages)
		}
		if !strings.Contains(req.System, "strength training coach") {
			t.Errorf("system prompt missing persona: %q", req.System)
		}
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Try "},{"type":"text","text":"rows."}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123", "test-model", testLogger())
	reply, err := c.Complete(context.Background(),
		BuildSystemPrompt(SessionContext{}),
		[]Message{{Role: "user", Content: "What should I pair with bench?"}})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if reply.Message != "Try rows." {
		t.Errorf("Message = %q, want %q", reply.Message, "Try rows.")
	}
	if len(reply.Suggestions) != 0 {
		t.Errorf("Suggestions = %+v, want none", reply.Suggestions)
	}
}

// TestCompleteAPIError verifies the error message from the API surfaces.
func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"max_tokens required"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "m", testLogger())
	_, err := c.Complete(context.Background(), "", []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error from 400 response")
	}
	if !strings.Contains(err.Error(), "max_tokens required") {
		t.Errorf("error %q missing API message", err)
	}
}

// TestExtractSuggestions verifies a valid fenced block is parsed and
// stripped from the displayed message.
func TestExtractSuggestions(t *testing.T) {
	text := "Rows pair well with bench.\n```json\n" +
		`{"suggestPairings":[{"exercise":"Kroc Rows","rating":"great","reason":"antagonist"}]}` +
		"\n```\nGive them a try."

	msg, sugs := ExtractSuggestions(text)
	if len(sugs) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(sugs))
	}
	if sugs[0].Exercise != "Kroc Rows" || sugs[0].Rating != "great" {
		t.Errorf("suggestion = %+v", sugs[0])
	}
	if strings.Contains(msg, "suggestPairings") {
		t.Errorf("message still contains block: %q", msg)
	}
	if !strings.Contains(msg, "Rows pair well") || !strings.Contains(msg, "Give them a try.") {
		t.Errorf("message text lost around block: %q", msg)
	}
}

// TestExtractSuggestionsMalformed verifies a block that fails to parse is
// ignored and the text left untouched.
func TestExtractSuggestionsMalformed(t *testing.T) {
	text := "Here:\n```json\n{not valid json}\n```"
	msg, sugs := ExtractSuggestions(text)
	if sugs != nil {
		t.Errorf("suggestions = %+v, want nil", sugs)
	}
	if msg != text {
		t.Errorf("message altered: %q", msg)
	}
}

// TestExtractSuggestionsNoBlock verifies plain replies pass through.
func TestExtractSuggestionsNoBlock(t *testing.T) {
	msg, sugs := ExtractSuggestions("Just do more sets.")
	if msg != "Just do more sets." || sugs != nil {
		t.Errorf("got (%q, %+v)", msg, sugs)
	}
}

// TestBuildSystemPrompt verifies session state appears in the prompt.
func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(SessionContext{
		Exercises: []ExerciseContext{
			{Name: "Bench Press", MuscleGroups: []string{"chest", "triceps"}, LastSummary: "3x5 @ 185"},
		},
		RecentWorkouts: []string{"2026-03-08: Bench Press, Curls"},
		ReadinessScore: 82,
		SleepScore:     75,
	})
	for _, want := range []string{"Bench Press", "chest, triceps", "3x5 @ 185", "readiness score: 82", "sleep score: 75", "suggestPairings"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
