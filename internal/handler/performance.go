package handler

import (
	"net/http"
	"strconv"

	"github.com/foosball/league/internal/domain"
	"github.com/go-chi/chi/v5"
)

// PerformanceHandler serves /api/performances.
type PerformanceHandler struct {
	performances PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler.
func NewPerformanceHandler(performances PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performances: performances}
}

// List handles GET /performances, narrowed to one game by ?game=.
func (h *PerformanceHandler) List(w http.ResponseWriter, r *http.Request) {
	perfs, err := h.performances.List(r.Context(), r.URL.Query().Get("game"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, perfs)
}

// Get handles GET /performances/{id}.
func (h *PerformanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := performanceID(w, r)
	if !ok {
		return
	}
	p, err := h.performances.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

// Create handles POST /performances.
func (h *PerformanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := domain.NewPerformance()
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	p, err := h.performances.Create(r.Context(), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, p)
}

// Replace handles PUT /performances/{id}.
func (h *PerformanceHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := performanceID(w, r)
	if !ok {
		return
	}
	current, err := h.performances.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	in := *current
	if err := decodeReplace(r, &in, "game", "player", "team_color", "role"); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, id, in)
}

// Patch handles PATCH /performances/{id}.
func (h *PerformanceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := performanceID(w, r)
	if !ok {
		return
	}
	current, err := h.performances.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	in := *current
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, id, in)
}

func (h *PerformanceHandler) update(w http.ResponseWriter, r *http.Request, id int64, in domain.Performance) {
	p, err := h.performances.Update(r.Context(), id, in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /performances/{id}.
func (h *PerformanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := performanceID(w, r)
	if !ok {
		return
	}
	if err := h.performances.Delete(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// performanceID parses the {id} path segment. A non-numeric id cannot name
// any row and is answered with 404.
func performanceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondError(w, domain.ErrNotFound("performance", raw))
		return 0, false
	}
	return id, true
}
