package tabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/domain"
	"dorkboard/internal/usecase"
)

// SyntaxModel is the explainer tab: every dork with its description, raw
// template and operator breakdown, rendered as markdown through glamour.
type SyntaxModel struct {
	Viewport   viewport.Model
	categories []domain.Category
	ascii      bool
	ready      bool
	width      int
	height     int
}

// NewSyntax creates the explainer tab. ascii selects glamour's plain ASCII style.
func NewSyntax(categories []domain.Category, ascii bool) SyntaxModel {
	return SyntaxModel{categories: categories, ascii: ascii}
}

// SetSize sets dimensions and re-renders for the new wrap width.
func (m *SyntaxModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if !m.ready {
		m.Viewport = viewport.New(w, h)
		m.Viewport.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.Viewport.Width = w
		m.Viewport.Height = h
	}
	m.Viewport.SetContent(m.render())
}

// Update handles viewport scrolling.
func (m SyntaxModel) Update(msg tea.Msg) (SyntaxModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View renders the explainer tab.
func (m SyntaxModel) View() string {
	if !m.ready {
		return ""
	}
	return m.Viewport.View()
}

func (m SyntaxModel) render() string {
	src := SyntaxMarkdown(m.categories)
	wrap := theme.Clamp(m.width-4, 20, theme.MaxContentWidth)

	style := glamour.WithAutoStyle()
	if m.ascii {
		style = glamour.WithStandardStyle("ascii")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return out
}

// SyntaxMarkdown builds the explainer document for the given categories.
func SyntaxMarkdown(categories []domain.Category) string {
	var sb strings.Builder
	sb.WriteString("# Dork syntax deep-dive\n\n")
	sb.WriteString("Each template below is rendered with your target in place of `{target}`.\n\n")

	for _, cat := range categories {
		fmt.Fprintf(&sb, "## %s\n\n", cat.Name)
		for _, d := range cat.Dorks {
			fmt.Fprintf(&sb, "### %s\n\n", d.Label)
			if d.Description != "" {
				sb.WriteString(d.Description)
				sb.WriteString("\n\n")
			}
			fmt.Fprintf(&sb, "```\n%s\n```\n\n", d.Template)
			if ops := usecase.Explain(d.Template); len(ops) > 0 {
				for _, op := range ops {
					fmt.Fprintf(&sb, "- `%s` %s\n", op.Token, op.Meaning)
				}
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
