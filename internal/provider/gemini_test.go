package provider

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGenerateContent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi "},{"text":"there"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GenerateContent(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", got)
}

func TestGenerateContent_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error message surfaced", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, "api returned 403: API key not valid"},
		{"non-json error body", http.StatusBadGateway, `upstream down`, "api returned 502"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "no candidates"},
		{"blocked prompt", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "prompt blocked: SAFETY"},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`, "MAX_TOKENS"},
		{"malformed json", http.StatusOK, `{"candidates":`, "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).GenerateContent(context.Background(), "hello")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateContent_NoAPIKey(t *testing.T) {
	c := NewGeminiClient(GeminiConfig{Model: "m"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.GenerateContent(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateContent_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewGeminiClient(GeminiConfig{APIKey: "k", Model: "m", BaseURL: srv.URL, Timeout: 20 * time.Millisecond},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api call")
}

func TestNewGeminiClient_Defaults(t *testing.T) {
	c := NewGeminiClient(GeminiConfig{APIKey: "k", Model: "m", BaseURL: "http://example.test/"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "http://example.test", c.baseURL)
	assert.Equal(t, 60*time.Second, c.client.Timeout)

	d := NewGeminiClient(GeminiConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, DefaultGeminiBaseURL, d.baseURL)
}
