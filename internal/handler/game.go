package handler

import (
	"net/http"

	"github.com/foosball/league/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GameHandler serves /api/games.
type GameHandler struct {
	games GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(games GameService) *GameHandler {
	return &GameHandler{games: games}
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, games)
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, g)
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.Game
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	g, err := h.games.Create(r.Context(), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, g)
}

func (h *GameHandler) Replace(w http.ResponseWriter, r *http.Request) {
	current, err := h.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	in := *current
	if err := decodeReplace(r, &in, "table", "winner_team"); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, in)
}

func (h *GameHandler) Patch(w http.ResponseWriter, r *http.Request) {
	current, err := h.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	in := *current
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, in)
}

func (h *GameHandler) update(w http.ResponseWriter, r *http.Request, in domain.Game) {
	g, err := h.games.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, g)
}

func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
