package web

import (
	"net/http"
	"sync/atomic"
	"time"
)

// StatusResponse is the JSON body returned by GET /api/v1/status.
type StatusResponse struct {
	Service ServiceStatus `json:"service"`
	Catalog CatalogStatus `json:"catalog"`
	Renders RenderStatus  `json:"renders"`
	Search  SearchStatus  `json:"search"`
}

// ServiceStatus holds process overview info.
type ServiceStatus struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// CatalogStatus holds catalog sizes.
type CatalogStatus struct {
	Categories int `json:"categories"`
	Dorks      int `json:"dorks"`
}

// RenderStatus holds render counters.
type RenderStatus struct {
	Total       int64 `json:"total"`
	Errors      int64 `json:"errors"`
	PageViews   int64 `json:"page_views"`
	APIRequests int64 `json:"api_requests"`
}

// SearchStatus reports the search endpoint links point at.
type SearchStatus struct {
	BaseURL string `json:"base_url"`
}

// Metrics tracks counters for the status API and Prometheus metrics.
type Metrics struct {
	PageViews         atomic.Int64
	APIRequests       atomic.Int64
	RendersTotal      atomic.Int64
	RenderErrorsTotal atomic.Int64
}

// statusHandler returns an HTTP handler for GET /api/v1/status.
func statusHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{
			Service: ServiceStatus{
				Name:          "dorkboard",
				Version:       h.deps.Version,
				UptimeSeconds: int64(time.Since(h.started).Seconds()),
			},
			Catalog: CatalogStatus{
				Categories: h.deps.Catalog.CategoryCount(),
				Dorks:      h.deps.Catalog.DorkCount(),
			},
			Renders: RenderStatus{
				Total:       h.metrics.RendersTotal.Load(),
				Errors:      h.metrics.RenderErrorsTotal.Load(),
				PageViews:   h.metrics.PageViews.Load(),
				APIRequests: h.metrics.APIRequests.Load(),
			},
			Search: SearchStatus{BaseURL: h.deps.Renderer.BaseURL()},
		})
	}
}
