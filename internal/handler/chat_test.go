package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (g *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.reply, g.err
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.Chat(w, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
	return w
}

func TestChatHandler(t *testing.T) {
	t.Run("welcome", func(t *testing.T) {
		h := NewChatHandler(&stubGenerator{}, noopLogger())
		w := httptest.NewRecorder()
		h.Welcome(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, chatWelcome, decodeMap(t, w)["message"])
	})

	t.Run("reply", func(t *testing.T) {
		gen := &stubGenerator{reply: "Hello there"}
		w := postChat(t, NewChatHandler(gen, noopLogger()), `{"message":"hello"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"response":"Hello there"}`, w.Body.String())
		assert.Equal(t, "hello", gen.prompt)
	})

	t.Run("external failure is 200 with error payload", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("api returned 503")}
		w := postChat(t, NewChatHandler(gen, noopLogger()), `{"message":"hello"}`)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeMap(t, w)
		assert.Equal(t, "api returned 503", body["error"])
		assert.NotContains(t, body, "response")
	})

	t.Run("malformed body never reaches the api", func(t *testing.T) {
		gen := &stubGenerator{}
		h := NewChatHandler(gen, noopLogger())
		for _, body := range []string{`{"message":`, `{}`, `{"message":42}`} {
			w := postChat(t, h, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
		assert.Zero(t, gen.calls)
	})
}
