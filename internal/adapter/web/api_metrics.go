package web

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"
)

// metricsHandler returns an HTTP handler for GET /metrics in Prometheus text format.
// This uses the lightweight text format to avoid pulling in the full prometheus client.
func metricsHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

		writeMetric(w, "dorkboard_catalog_categories", "gauge", "Number of catalog categories.",
			float64(h.deps.Catalog.CategoryCount()))
		writeMetric(w, "dorkboard_catalog_dorks", "gauge", "Number of catalog dorks.",
			float64(h.deps.Catalog.DorkCount()))

		writeMetric(w, "dorkboard_page_views_total", "counter", "HTML pages served.",
			float64(h.metrics.PageViews.Load()))
		writeMetric(w, "dorkboard_api_requests_total", "counter", "JSON API requests served.",
			float64(h.metrics.APIRequests.Load()))
		writeMetric(w, "dorkboard_renders_total", "counter", "Successful catalog renders.",
			float64(h.metrics.RendersTotal.Load()))
		writeMetric(w, "dorkboard_render_errors_total", "counter", "Rejected or failed renders.",
			float64(h.metrics.RenderErrorsTotal.Load()))

		writeMetric(w, "dorkboard_uptime_seconds", "gauge", "Seconds since the server started.",
			time.Since(h.started).Seconds())

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		writeMetric(w, "go_goroutines", "gauge", "Number of goroutines.", float64(runtime.NumGoroutine()))
		writeMetric(w, "go_memstats_alloc_bytes", "gauge", "Bytes of allocated heap objects.", float64(mem.Alloc))
		writeMetric(w, "go_memstats_sys_bytes", "gauge", "Total bytes of memory obtained from the OS.", float64(mem.Sys))
	}
}

func writeMetric(w io.Writer, name, kind, help string, value float64) {
	fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
	fmt.Fprintf(w, "%s %g\n", name, value)
}
