package handler

import (
	"log/slog"
	"net/http"

	"github.com/foosball/league/internal/domain"
)

const chatWelcome = "Welcome to the Gemini chatbot!"

// ChatHandler proxies single chat messages to a Generator.
type ChatHandler struct {
	gen    Generator
	logger *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(gen Generator, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{gen: gen, logger: logger}
}

type chatRequest struct {
	Message *string `json:"message"`
}

// Welcome handles GET /.
func (h *ChatHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"message": chatWelcome})
}

// Chat handles POST /chat. A failed generation is still answered with 200
// and an in-band {"error": ...} body.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if req.Message == nil {
		f := domain.FieldErrors{}
		f.Add("message", msgRequired)
		RespondError(w, f.Err())
		return
	}

	reply, err := h.gen.GenerateContent(r.Context(), *req.Message)
	if err != nil {
		h.logger.Warn("chat generation failed",
			"error", err,
			"request_id", GetRequestID(r.Context()),
		)
		RespondJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}
