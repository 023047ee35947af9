package handler

import (
	"net/http"

	"github.com/foosball/league/internal/auth"
	"github.com/foosball/league/internal/domain"
	"github.com/foosball/league/internal/service"
)

// AuthHandler handles player login endpoints.
type AuthHandler struct {
	authSvc Authenticator
	players PlayerService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc Authenticator, players PlayerService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, players: players}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	result, err := h.authSvc.Login(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}

// Me handles GET /auth/me and returns the logged-in player.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == "" {
		RespondError(w, domain.ErrUnauthorized("no subject in context"))
		return
	}

	p, err := h.players.Get(r.Context(), sub)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}
