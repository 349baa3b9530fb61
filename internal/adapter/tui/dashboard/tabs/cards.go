package tabs

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/domain"
)

// PlainFunc converts a markdown description to single-line plain text.
type PlainFunc func(string) string

// CardsModel shows the rendered dorks of one category as a scrollable grid of cards.
type CardsModel struct {
	Viewport viewport.Model
	category domain.RenderedCategory
	plain    PlainFunc
	ready    bool
	width    int
	height   int
}

// NewCards creates a card view. plain may be nil, in which case descriptions
// are shown verbatim.
func NewCards(plain PlainFunc) CardsModel {
	if plain == nil {
		plain = func(s string) string { return s }
	}
	return CardsModel{plain: plain}
}

// SetSize sets dimensions and reflows the grid.
func (m *CardsModel) SetSize(w, h int) {
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
	m.refresh()
}

// SetCategory replaces the rendered category and scrolls to the top.
func (m *CardsModel) SetCategory(rc domain.RenderedCategory) {
	m.category = rc
	m.refresh()
	if m.ready {
		m.Viewport.GotoTop()
	}
}

// Category returns the category currently shown.
func (m CardsModel) Category() domain.RenderedCategory {
	return m.category
}

// Update handles viewport scrolling.
func (m CardsModel) Update(msg tea.Msg) (CardsModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View renders the card grid.
func (m CardsModel) View() string {
	if !m.ready {
		return ""
	}
	return m.Viewport.View()
}

func (m *CardsModel) refresh() {
	if !m.ready {
		return
	}
	m.Viewport.SetContent(m.grid())
}

// grid lays cards out in up to three columns, fewer on narrow terminals.
func (m CardsModel) grid() string {
	if len(m.category.Dorks) == 0 {
		return theme.TextMuted.Render("  No dorks in this category.")
	}

	cols := theme.Clamp(m.width/36, 1, 3)
	cardW := (m.width-2)/cols - 2
	if cardW < 20 {
		cardW = 20
	}

	cards := make([]string, len(m.category.Dorks))
	for i, d := range m.category.Dorks {
		cards[i] = m.card(d, cardW)
	}

	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// card renders one dork: label, description, query preview and URL.
// The frame takes 4 columns (border plus padding).
func (m CardsModel) card(d domain.RenderedDork, width int) string {
	inner := width - 4
	lines := []string{theme.CardTitle.Render(d.Label)}
	if desc := m.plain(d.Description); desc != "" {
		lines = append(lines, theme.CardBody.Width(inner).Render(desc))
	}
	lines = append(lines,
		theme.CardQuery.Width(inner).Render("QUERY: "+d.Preview),
		theme.CardURL.Width(inner).Render(theme.SymbolLink+" "+d.URL),
	)
	return theme.Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}
