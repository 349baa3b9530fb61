package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"dorkboard/internal/domain"
	"dorkboard/internal/infra/tracer"
)

// DefaultSearchBaseURL is the search endpoint the encoded query is appended to.
const DefaultSearchBaseURL = "https://www.google.com/search?q="

// wholeSiteLabel is the preview shown when a query is nothing but its site: scope.
const wholeSiteLabel = "Whole Site Search"

// Renderer substitutes a target domain into dork templates and builds search URLs.
// It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	baseURL string
}

// NewRenderer creates a Renderer for the given search base URL.
// An empty baseURL selects DefaultSearchBaseURL.
func NewRenderer(baseURL string) *Renderer {
	if baseURL == "" {
		baseURL = DefaultSearchBaseURL
	}
	return &Renderer{baseURL: baseURL}
}

// BaseURL returns the search endpoint used by this renderer.
func (r *Renderer) BaseURL() string { return r.baseURL }

// Render replaces every {target} in template with target and encodes the result
// into a search URL. Whitespace around target is ignored; an empty target
// yields domain.ErrEmptyTarget.
func (r *Renderer) Render(template, target string) (domain.Rendered, error) {
	target, err := domain.NormalizeTarget(target)
	if err != nil {
		return domain.Rendered{}, domain.NewDomainError("Renderer.Render", err, "")
	}

	query := strings.ReplaceAll(template, domain.TargetPlaceholder, target)
	return domain.Rendered{
		Query:   query,
		URL:     r.baseURL + QueryEscape(query),
		Preview: Preview(query, target),
	}, nil
}

// RenderDork renders a single catalog entry.
func (r *Renderer) RenderDork(d domain.Dork, target string) (domain.RenderedDork, error) {
	rendered, err := r.Render(d.Template, target)
	if err != nil {
		return domain.RenderedDork{}, err
	}
	return domain.RenderedDork{Dork: d, Rendered: rendered}, nil
}

// RenderCategory renders every dork of cat in order.
func (r *Renderer) RenderCategory(cat domain.Category, target string) (domain.RenderedCategory, error) {
	out := domain.RenderedCategory{
		ID:    cat.ID,
		Name:  cat.Name,
		Dorks: make([]domain.RenderedDork, 0, len(cat.Dorks)),
	}
	for _, d := range cat.Dorks {
		rd, err := r.RenderDork(d, target)
		if err != nil {
			return domain.RenderedCategory{}, err
		}
		out.Dorks = append(out.Dorks, rd)
	}
	return out, nil
}

// RenderCatalog renders the whole catalog for target, preserving catalog order.
func (r *Renderer) RenderCatalog(ctx context.Context, catalog *domain.Catalog, target string) ([]domain.RenderedCategory, error) {
	_, span := tracer.StartSpan(ctx, "renderer.render_catalog",
		trace.WithAttributes(
			tracer.StringAttr("render.target", target),
			tracer.IntAttr("render.dorks", catalog.DorkCount()),
		))
	defer span.End()

	if _, err := domain.NormalizeTarget(target); err != nil {
		err = domain.NewDomainError("Renderer.RenderCatalog", err, "")
		tracer.RecordError(span, err)
		return nil, err
	}

	categories := catalog.Categories()
	out := make([]domain.RenderedCategory, 0, len(categories))
	for _, cat := range categories {
		rc, err := r.RenderCategory(cat, target)
		if err != nil {
			tracer.RecordError(span, err)
			return nil, err
		}
		out = append(out, rc)
	}

	tracer.SetOK(span)
	return out, nil
}

// Preview returns the query with its "site:<target>" scope removed, for compact
// display on cards. A query that is only the scope becomes "Whole Site Search".
func Preview(query, target string) string {
	preview := strings.TrimSpace(strings.ReplaceAll(query, "site:"+target, ""))
	if preview == "" {
		return wholeSiteLabel
	}
	return preview
}

const upperhex = "0123456789ABCDEF"

// QueryEscape percent-encodes s for use as a search query value.
// Only ASCII letters, digits, "-._~" and "/" are left as-is; every other byte,
// including space, is written as %XX with uppercase hex.
func QueryEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isQuerySafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isQuerySafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', '/':
		return true
	}
	return false
}
