package handler

import (
	"net/http"

	"github.com/foosball/league/internal/domain"
	"github.com/go-chi/chi/v5"
)

// PlayerHandler serves /api/players.
type PlayerHandler struct {
	players PlayerService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(players PlayerService) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// List handles GET /players.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, players)
}

// Get handles GET /players/{id}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

// Create handles POST /players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := domain.NewPlayerWrite()
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	p, err := h.players.Create(r.Context(), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, p)
}

// Replace handles PUT /players/{id}. Name and email must be sent; omitted
// optional fields keep their current values.
func (h *PlayerHandler) Replace(w http.ResponseWriter, r *http.Request) {
	current, err := h.players.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	in := current.Write()
	if err := decodeReplace(r, &in, "name", "email"); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, in)
}

// Patch handles PATCH /players/{id}. Omitted fields keep their current values.
func (h *PlayerHandler) Patch(w http.ResponseWriter, r *http.Request) {
	current, err := h.players.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	in := current.Write()
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, in)
}

func (h *PlayerHandler) update(w http.ResponseWriter, r *http.Request, in domain.PlayerWrite) {
	p, err := h.players.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /players/{id}.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
