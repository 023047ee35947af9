package handler

import (
	"net/http"

	"github.com/foosball/league/internal/domain"
	"github.com/go-chi/chi/v5"
)

// TableHandler serves /api/foosball-tables.
type TableHandler struct {
	tables TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(tables TableService) *TableHandler {
	return &TableHandler{tables: tables}
}

// List handles GET /foosball-tables?search=&ordering=.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	q := domain.TableQuery{
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
	}
	tables, err := h.tables.List(r.Context(), q)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, tables)
}

// Get handles GET /foosball-tables/{tableID}.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.tables.Get(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, t)
}

// Create handles POST /foosball-tables.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := domain.NewFoosballTable()
	if err := decodeBody(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	t, err := h.tables.Create(r.Context(), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, t)
}

// Replace handles PUT /foosball-tables/{tableID}.
func (h *TableHandler) Replace(w http.ResponseWriter, r *http.Request) {
	current, err := h.tables.Get(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		RespondError(w, err)
		return
	}
	in := *current
	if err := decodeReplace(r, &in, "name", "condition_state"); err != nil {
		RespondError(w, err)
		return
	}
	h.update(w, r, in)
}

// Patch handles PATCH /foosball-tables/{tableID}.
func (h *TableHandler) Patch(w http.ResponseWriter, r *http.Request) {
	current, err := h.tables.Get(r.Context(), chi.URLParam(r, "tableID"))
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

func (h *TableHandler) update(w http.ResponseWriter, r *http.Request, in domain.FoosballTable) {
	t, err := h.tables.Update(r.Context(), chi.URLParam(r, "tableID"), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /foosball-tables/{tableID}. Games on the table go with it.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tables.Delete(r.Context(), chi.URLParam(r, "tableID")); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
