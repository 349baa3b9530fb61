package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"dorkboard/internal/domain"
	"dorkboard/internal/usecase"
)

// renderCmd renders every category for target asynchronously.
func renderCmd(ctx context.Context, r *usecase.Renderer, catalog *domain.Catalog, target string) tea.Cmd {
	return func() tea.Msg {
		cats, err := r.RenderCatalog(ctx, catalog, target)
		return RenderResultMsg{Target: target, Categories: cats, Err: err}
	}
}
