// Package components provides reusable Bubble Tea sub-models for the TUI.
package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dorkboard/internal/adapter/tui/theme"
)

// Tab represents a single tab entry.
type Tab struct {
	ID    string
	Label string
	Badge int // dork count shown next to the label; 0 = hidden
}

// TabBarModel is a horizontal tab bar with keyboard navigation.
type TabBarModel struct {
	Tabs      []Tab
	Active    int
	Row       int // screen row the bar is drawn on, for mouse hit-testing
	width     int
	collapsed bool // true when width < MinTabWidth
}

// NewTabBar creates a tab bar with the given tabs. The first tab is active.
func NewTabBar(tabs []Tab) TabBarModel {
	return TabBarModel{Tabs: tabs}
}

// SetWidth updates the available width and determines if tabs should collapse.
func (m *TabBarModel) SetWidth(w int) {
	m.width = w
	m.collapsed = w < theme.MinTabWidth
}

// Next advances to the next tab, wrapping around.
func (m *TabBarModel) Next() {
	if len(m.Tabs) == 0 {
		return
	}
	m.Active = (m.Active + 1) % len(m.Tabs)
}

// Prev moves to the previous tab, wrapping around.
func (m *TabBarModel) Prev() {
	if len(m.Tabs) == 0 {
		return
	}
	m.Active = (m.Active - 1 + len(m.Tabs)) % len(m.Tabs)
}

// SetActive sets the active tab by index.
func (m *TabBarModel) SetActive(i int) {
	if i >= 0 && i < len(m.Tabs) {
		m.Active = i
	}
}

// SetTabs replaces the tab list, keeping the active index when it still fits.
func (m *TabBarModel) SetTabs(tabs []Tab) {
	m.Tabs = tabs
	if m.Active >= len(tabs) {
		m.Active = 0
	}
}

// Index returns the position of the tab with the given ID, or -1.
func (m TabBarModel) Index(id string) int {
	for i, t := range m.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the active tab, or false when there are none.
func (m TabBarModel) Current() (Tab, bool) {
	if len(m.Tabs) == 0 {
		return Tab{}, false
	}
	return m.Tabs[m.Active], true
}

// Update handles mouse clicks on tab labels. Keyboard switching is routed by
// the parent model through Next/Prev/SetActive.
func (m TabBarModel) Update(msg tea.Msg) (TabBarModel, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.Y != m.Row || mouse.Action != tea.MouseActionRelease || m.collapsed {
		return m, nil
	}
	x := 0
	for i, t := range m.Tabs {
		w := lipgloss.Width(theme.TabNormal.Render(m.label(t)))
		if mouse.X >= x && mouse.X < x+w {
			m.Active = i
			break
		}
		x += w
	}
	return m, nil
}

// View renders the tab bar.
func (m TabBarModel) View() string {
	if len(m.Tabs) == 0 {
		return ""
	}

	if m.collapsed {
		// Collapsed mode: show only the active tab with index.
		t := m.Tabs[m.Active]
		label := theme.TabActive.Render(t.Label)
		counter := theme.Dim.Render("[" + strconv.Itoa(m.Active+1) + "/" + strconv.Itoa(len(m.Tabs)) + "]")
		return lipgloss.JoinHorizontal(lipgloss.Center, label, " ", counter)
	}

	var parts []string
	for i, t := range m.Tabs {
		label := m.label(t)
		if i == m.Active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabNormal.Render(label))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	// Pad to full width.
	if m.width > 0 {
		bg := theme.TabNormal.UnsetPadding()
		remaining := m.width - lipgloss.Width(bar)
		if remaining > 0 {
			bar += bg.Render(strings.Repeat(" ", remaining))
		}
	}

	return bar
}

func (m TabBarModel) label(t Tab) string {
	if t.Badge > 0 {
		return t.Label + " " + strconv.Itoa(t.Badge)
	}
	return t.Label
}
