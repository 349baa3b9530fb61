package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"dorkboard/internal/adapter/markup"
	"dorkboard/internal/domain"
	"dorkboard/internal/infra/middleware"
	"dorkboard/internal/infra/tracer"
	"dorkboard/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// HandlerDeps bundles dependencies for the dashboard handlers.
type HandlerDeps struct {
	Catalog  *domain.Catalog
	Renderer *usecase.Renderer
	Logger   *slog.Logger
	Version  string
}

// Handler serves the dashboard pages and the JSON API.
type Handler struct {
	deps    HandlerDeps
	md      *markup.Markdown
	metrics *Metrics
	started time.Time
	pages   map[string]*template.Template
}

// NewHandler parses the embedded templates and returns a ready handler.
func NewHandler(deps HandlerDeps) (*Handler, error) {
	if deps.Catalog == nil || deps.Renderer == nil {
		return nil, fmt.Errorf("web: catalog and renderer are required")
	}
	h := &Handler{
		deps:    deps,
		md:      markup.New(),
		metrics: &Metrics{},
		started: time.Now(),
		pages:   make(map[string]*template.Template),
	}

	funcs := template.FuncMap{
		"markdown": h.md.HTML,
		"plain":    h.md.Plain,
		"explain":  usecase.Explain,
	}
	for _, page := range []string{"index", "syntax"} {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		h.pages[page] = t
	}
	return h, nil
}

// Metrics exposes the handler's counters.
func (h *Handler) Metrics() *Metrics { return h.metrics }

// Register mounts every route on srv.
func (h *Handler) Register(srv *Server) {
	srv.RegisterHTTPRoute("GET /{$}", h.traced("web.index", h.handleIndex))
	srv.RegisterHTTPRoute("GET /syntax", h.traced("web.syntax", h.handleSyntax))
	srv.RegisterHTTPRoute("GET /api/v1/catalog", h.traced("api.catalog", h.handleCatalog))
	srv.RegisterHTTPRoute("GET /api/v1/render", h.traced("api.render", h.handleRender))
	srv.RegisterHTTPRoute("GET /api/v1/status", statusHandler(h))
	srv.RegisterHTTPRoute("GET /metrics", metricsHandler(h))
	srv.RegisterHTTPRoute("GET /healthz", healthHandler)
}

// traced wraps a handler in a span named name.
func (h *Handler) traced(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.StartSpan(r.Context(), name,
			trace.WithAttributes(
				tracer.StringAttr("http.method", r.Method),
				tracer.StringAttr("http.path", r.URL.Path),
				tracer.StringAttr("request.id", middleware.RequestIDFrom(r.Context())),
			))
		defer span.End()
		next(w, r.WithContext(ctx))
	}
}

// pageData is the view model shared by the HTML templates.
type pageData struct {
	Nav        string
	Target     string
	Version    string
	Categories []domain.Category
	Rendered   []domain.RenderedCategory
	Active     *domain.RenderedCategory
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.metrics.PageViews.Add(1)
	data := pageData{
		Nav:     "visualizer",
		Target:  strings.TrimSpace(r.URL.Query().Get("target")),
		Version: h.deps.Version,
	}

	if data.Target == "" {
		data.Categories = h.deps.Catalog.Categories()
		h.renderPage(w, "index", data)
		return
	}

	rendered, err := h.deps.Renderer.RenderCatalog(r.Context(), h.deps.Catalog, data.Target)
	if err != nil {
		h.metrics.RenderErrorsTotal.Add(1)
		h.deps.Logger.Error("render catalog", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	h.metrics.RendersTotal.Add(1)

	data.Rendered = rendered
	data.Active = activeCategory(rendered, r.URL.Query().Get("category"))
	h.renderPage(w, "index", data)
}

// activeCategory picks the selected tab, defaulting to the first category.
func activeCategory(rendered []domain.RenderedCategory, id string) *domain.RenderedCategory {
	if len(rendered) == 0 {
		return nil
	}
	for i := range rendered {
		if rendered[i].ID == id {
			return &rendered[i]
		}
	}
	return &rendered[0]
}

func (h *Handler) handleSyntax(w http.ResponseWriter, r *http.Request) {
	h.metrics.PageViews.Add(1)
	h.renderPage(w, "syntax", pageData{
		Nav:        "syntax",
		Target:     strings.TrimSpace(r.URL.Query().Get("target")),
		Version:    h.deps.Version,
		Categories: h.deps.Catalog.Categories(),
	})
}

// renderPage executes into a buffer first so a template error never leaves a
// half-written page behind.
func (h *Handler) renderPage(w http.ResponseWriter, page string, data pageData) {
	var buf bytes.Buffer
	if err := h.pages[page].Execute(&buf, data); err != nil {
		h.deps.Logger.Error("execute template", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
