package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string, maxRetries int) *Client {
	return NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		APIVersion: "v1beta",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(ChatResponse{
			Candidates: []Candidate{{
				Content: Content{
					Role:  "model",
					Parts: []Part{{Text: "## Error Details\n"}, {Text: "None found."}},
				},
				FinishReason: "STOP",
			}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	resp, err := client.GenerateContent(context.Background(), ChatRequest{
		Model: "gemini-1.5-flash",
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: "hello"}}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Len(t, gotBody.Contents, 1)

	assert.Equal(t, "## Error Details\nNone found.", resp.Text())
	assert.False(t, resp.Blocked())
}

func TestGenerateContentDefaults(t *testing.T) {
	var gotPath string
	var raw map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(ChatResponse{})
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:           "k",
		BaseURL:          server.URL,
		DefaultModel:     "gemini-1.5-pro",
		DefaultMaxTokens: 1234,
		Temperature:      Float64Ptr(0.4),
		Timeout:          5 * time.Second,
	})

	_, err := client.GenerateContent(context.Background(), ChatRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: "hi"}}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", gotPath)

	genCfg, ok := raw["generationConfig"].(map[string]interface{})
	require.True(t, ok, "generationConfig must be populated with defaults")
	assert.EqualValues(t, 1234, genCfg["maxOutputTokens"])
	assert.InDelta(t, 0.4, genCfg["temperature"], 1e-9)

	// The model selects the URL, it must not leak into the body
	_, hasModel := raw["model"]
	assert.False(t, hasModel)
}

func TestGenerateContentAPIError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIError{ErrorDetail: &ErrorDetails{
			Code:    400,
			Message: "API key not valid",
			Status:  "INVALID_ARGUMENT",
		}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	_, err := client.GenerateContent(context.Background(), ChatRequest{Model: "gemini-1.5-flash"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, 1, calls, "4xx responses must not be retried")
}

func TestGenerateContentRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(APIError{ErrorDetail: &ErrorDetails{Code: 503, Message: "overloaded"}})
			return
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: "ok"}}}}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5)

	resp, err := client.GenerateContent(context.Background(), ChatRequest{Model: "gemini-1.5-flash"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, 3, calls)
}

func TestChatResponseBlocked(t *testing.T) {
	resp := &ChatResponse{
		PromptFeedback: &PromptFeedback{BlockReason: "SAFETY"},
	}

	assert.True(t, resp.Blocked())
	assert.Empty(t, resp.Text())
}
