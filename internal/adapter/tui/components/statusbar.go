package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dorkboard/internal/adapter/tui/theme"
)

// KeyHint represents a single keybinding hint shown in the status bar.
type KeyHint struct {
	Key  string // e.g. "Enter"
	Desc string // e.g. "Render"
}

// StatusBarModel renders a bottom status bar with keybinding hints, the
// current target and catalog size.
type StatusBarModel struct {
	Hints  []KeyHint // show 4-5 most important hints
	Target string
	Dorks  int
	Extra  string // transient notice, e.g. "cleared"
	width  int
}

// NewStatusBar creates a status bar with default hints.
func NewStatusBar() StatusBarModel {
	return StatusBarModel{}
}

// SetWidth updates the available width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single line.
func (m StatusBarModel) View() string {
	// Left side: keybinding hints.
	var hints []string
	for _, h := range m.Hints {
		key := theme.StatusKey.Render(h.Key)
		hints = append(hints, key+": "+h.Desc)
	}
	left := strings.Join(hints, "  "+theme.Dim.Render("|")+"  ")

	// Right side: target and catalog size.
	var parts []string
	if m.Target != "" {
		parts = append(parts, theme.SymbolTarget+" "+m.Target)
	}
	if m.Dorks > 0 {
		parts = append(parts, strconv.Itoa(m.Dorks)+" dorks")
	}
	right := theme.TextMuted.Render(strings.Join(parts, " "+theme.SymbolBullet+" "))

	if m.Extra != "" {
		if right != "" {
			right += "  "
		}
		right += theme.TextInfo.Render(m.Extra)
	}

	// Join left and right, padding the gap.
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW
	if gap < 1 {
		gap = 1
	}

	bar := left + strings.Repeat(" ", gap) + right
	return theme.StatusBar.Width(m.width).Render(bar)
}
