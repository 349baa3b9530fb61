// Package markup converts catalog descriptions from markdown to sanitized
// HTML or plain text.
package markup

import (
	"bytes"
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders catalog descriptions to sanitized HTML. Descriptions come
// from a possibly user-supplied catalog file, so goldmark output is always
// passed through bluemonday before reaching a template.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy

	cache sync.Map // source string -> template.HTML
}

// New creates a renderer with GitHub-flavoured extensions.
func New() *Markdown {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
		strict: bluemonday.StrictPolicy(),
	}
}

// HTML converts src to sanitized HTML. Conversion failures fall back to the
// escaped source text.
func (m *Markdown) HTML(src string) template.HTML {
	if v, ok := m.cache.Load(src); ok {
		return v.(template.HTML)
	}

	var buf bytes.Buffer
	var out template.HTML
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		out = template.HTML(template.HTMLEscapeString(src))
	} else {
		out = template.HTML(m.policy.SanitizeBytes(buf.Bytes()))
	}
	m.cache.Store(src, out)
	return out
}

// Plain renders src and strips every tag, for compact card text. The result is
// raw text and whitespace is collapsed to single spaces.
func (m *Markdown) Plain(src string) string {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	text := m.strict.Sanitize(buf.String())
	// Undo bluemonday's entity escaping; callers escape for their own medium.
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}
