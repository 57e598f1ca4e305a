// Package coach proxies chat to an Anthropic-style messages API and layers
// workout context into the system prompt. Replies may carry structured
// pairing suggestions in a fenced JSON block.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production messages API endpoint.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is used when the config does not name one.
	DefaultModel = "claude-sonnet-4-20250514"

	apiVersion   = "2023-06-01"
	maxTokens    = 1024
	suggestFence = "```json"
)

// Client calls the messages API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. Empty baseURL and model select the defaults.
func NewClient(baseURL, apiKey, model string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
}

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PairingSuggestion is a structured exercise recommendation extracted from
// the assistant's reply.
type PairingSuggestion struct {
	Exercise string `json:"exercise"`
	Rating   string `json:"rating"`
	Reason   string `json:"reason,omitempty"`
}

// Reply is the assistant's answer with any extracted suggestions. Message
// has the suggestion block stripped.
type Reply struct {
	Message     string              `json:"message"`
	Suggestions []PairingSuggestion `json:"suggestions,omitempty"`
}

type apiRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the conversation and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, system string, messages []Message) (*Reply, error) {
	body, err := json.Marshal(apiRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return nil, fmt.Errorf("coach: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("coach: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coach: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coach: read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("coach: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("coach: API error %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("coach: API returned %d", resp.StatusCode)
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	message, suggestions := ExtractSuggestions(text.String())
	return &Reply{Message: message, Suggestions: suggestions}, nil
}

// suggestBlock is the shape of the fenced JSON the assistant is prompted
// to emit for structured recommendations.
type suggestBlock struct {
	SuggestPairings []PairingSuggestion `json:"suggestPairings"`
}

// ExtractSuggestions pulls the first fenced JSON suggestion block out of
// the reply text. A block that fails to parse is left in place and
// ignored.
func ExtractSuggestions(text string) (string, []PairingSuggestion) {
	start := strings.Index(text, suggestFence)
	if start < 0 {
		return text, nil
	}
	rest := text[start+len(suggestFence):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return text, nil
	}

	var block suggestBlock
	if err := json.Unmarshal([]byte(rest[:end]), &block); err != nil || len(block.SuggestPairings) == 0 {
		return text, nil
	}

	stripped := strings.TrimSpace(text[:start] + rest[end+3:])
	return stripped, block.SuggestPairings
}
