// Package tabs provides individual tab models for the dashboard.
package tabs

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/domain"
)

// OverviewModel is the welcome screen shown until a target is entered. It
// lists what the catalog contains and a few session statistics.
type OverviewModel struct {
	Categories  []domain.Category
	RenderCount int
	ErrorCount  int
	LastError   string
	StartedAt   time.Time
	width       int
	height      int
}

// NewOverview creates an overview tab.
func NewOverview(categories []domain.Category) OverviewModel {
	return OverviewModel{
		Categories: categories,
		StartedAt:  time.Now(),
	}
}

// SetSize sets dimensions.
func (m *OverviewModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// IncrementRenders increments the render counter.
func (m *OverviewModel) IncrementRenders() { m.RenderCount++ }

// SetError records a failed render; an empty msg clears it.
func (m *OverviewModel) SetError(msg string) {
	if msg != "" {
		m.ErrorCount++
	}
	m.LastError = msg
}

// Update is a no-op for the overview tab.
func (m OverviewModel) Update(_ tea.Msg) (OverviewModel, tea.Cmd) {
	return m, nil
}

// View renders the overview tab.
func (m OverviewModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  " + theme.TextInfo.Render(theme.SymbolInfo+" ") +
		theme.Bold.Render("Welcome!") +
		" Enter a domain above and press " + theme.StatusKey.Render("Enter") + " to get started.\n")

	if m.LastError != "" {
		sb.WriteString("\n")
		for _, line := range strings.Split(m.LastError, "\n") {
			sb.WriteString("  " + theme.TextError.Render(line) + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(theme.Bold.Render("  What's inside") + "\n")
	if len(m.Categories) == 0 {
		sb.WriteString(theme.TextMuted.Render("  The catalog is empty") + "\n")
	}
	for _, cat := range m.Categories {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			theme.TextSuccess.Render(theme.SymbolSuccess),
			theme.Bold.Render(cat.Name),
			theme.TextMuted.Render(fmt.Sprintf("(%d)", len(cat.Dorks))),
		))
	}

	sb.WriteString("\n")
	sb.WriteString(theme.Bold.Render("  Statistics") + "\n")

	dorks := 0
	for _, cat := range m.Categories {
		dorks += len(cat.Dorks)
	}
	uptime := time.Since(m.StartedAt).Round(time.Second)
	stats := []struct {
		label string
		value string
	}{
		{"Categories", fmt.Sprintf("%d", len(m.Categories))},
		{"Dorks", fmt.Sprintf("%d", dorks)},
		{"Renders", fmt.Sprintf("%d", m.RenderCount)},
		{"Errors", fmt.Sprintf("%d", m.ErrorCount)},
		{"Uptime", uptime.String()},
	}

	var statParts []string
	for _, s := range stats {
		statParts = append(statParts, fmt.Sprintf("%s: %s",
			theme.TextMuted.Render(s.label),
			theme.TextInfo.Bold(true).Render(s.value),
		))
	}
	sb.WriteString("  " + strings.Join(statParts, "  "+lipgloss.NewStyle().Foreground(theme.ColorBorder).Render("|")+"  ") + "\n")

	return sb.String()
}
