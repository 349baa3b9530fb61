package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"dorkboard/internal/domain"
)

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error string           `json:"error"`
	Code  domain.ErrorCode `json:"code"`
}

// CatalogResponse is the JSON body returned by GET /api/v1/catalog.
type CatalogResponse struct {
	Categories []domain.Category `json:"categories"`
}

// RenderResponse is the JSON body returned by GET /api/v1/render.
type RenderResponse struct {
	Target     string                    `json:"target"`
	BaseURL    string                    `json:"base_url"`
	Categories []domain.RenderedCategory `json:"categories"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to an HTTP status via its domain sentinel.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptyTarget), errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimit):
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: domain.ErrorCodeOf(err)})
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	h.metrics.APIRequests.Add(1)
	writeJSON(w, http.StatusOK, CatalogResponse{Categories: h.deps.Catalog.Categories()})
}

// handleRender renders the whole catalog, or one category when ?category= is set.
func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	h.metrics.APIRequests.Add(1)
	q := r.URL.Query()
	target, err := domain.NormalizeTarget(q.Get("target"))
	if err != nil {
		h.metrics.RenderErrorsTotal.Add(1)
		writeError(w, domain.NewDomainError("api.render", err, "query parameter target is required"))
		return
	}

	var categories []domain.RenderedCategory
	if id := q.Get("category"); id != "" {
		cat, err := h.deps.Catalog.Category(id)
		if err != nil {
			writeError(w, err)
			return
		}
		rc, err := h.deps.Renderer.RenderCategory(cat, target)
		if err != nil {
			h.metrics.RenderErrorsTotal.Add(1)
			writeError(w, err)
			return
		}
		categories = []domain.RenderedCategory{rc}
	} else {
		categories, err = h.deps.Renderer.RenderCatalog(r.Context(), h.deps.Catalog, target)
		if err != nil {
			h.metrics.RenderErrorsTotal.Add(1)
			writeError(w, err)
			return
		}
	}
	h.metrics.RendersTotal.Add(1)

	writeJSON(w, http.StatusOK, RenderResponse{
		Target:     target,
		BaseURL:    h.deps.Renderer.BaseURL(),
		Categories: categories,
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
