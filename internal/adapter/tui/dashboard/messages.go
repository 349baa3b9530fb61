// Package dashboard implements the dorkboard Bubble Tea dashboard: a target
// input, one card tab per catalog category and a syntax explainer tab.
package dashboard

import "dorkboard/internal/domain"

// RenderResultMsg carries the outcome of rendering the catalog for a target.
type RenderResultMsg struct {
	Target     string
	Categories []domain.RenderedCategory
	Err        error
}
