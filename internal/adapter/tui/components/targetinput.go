package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dorkboard/internal/adapter/tui/theme"
)

// TargetSubmitMsg is emitted when the user presses Enter in the target input.
// Target is trimmed and may be empty.
type TargetSubmitMsg struct {
	Target string
}

// TargetInputModel is the single-line domain input at the top of the dashboard.
type TargetInputModel struct {
	Input textinput.Model
	width int
}

// NewTargetInput creates a focused target input.
func NewTargetInput() TargetInputModel {
	ti := textinput.New()
	ti.Placeholder = "example.com"
	ti.Prompt = "Target domain: "
	ti.CharLimit = 253
	ti.Width = 40
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Focus()
	return TargetInputModel{Input: ti}
}

// SetWidth updates the input width.
func (m *TargetInputModel) SetWidth(w int) {
	m.width = w
	m.Input.Width = theme.Clamp(w-len(m.Input.Prompt)-4, 10, theme.MaxContentWidth)
}

// Focused reports whether the input receives keystrokes.
func (m TargetInputModel) Focused() bool {
	return m.Input.Focused()
}

// Focus gives the input keyboard focus.
func (m *TargetInputModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

// Blur removes keyboard focus.
func (m *TargetInputModel) Blur() {
	m.Input.Blur()
}

// Value returns the trimmed input text.
func (m TargetInputModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

// Reset clears the input and focuses it.
func (m *TargetInputModel) Reset() tea.Cmd {
	m.Input.SetValue("")
	return m.Input.Focus()
}

// Update handles input while focused. Enter emits a TargetSubmitMsg.
func (m TargetInputModel) Update(msg tea.Msg) (TargetInputModel, tea.Cmd) {
	if !m.Input.Focused() {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		target := m.Value()
		return m, func() tea.Msg { return TargetSubmitMsg{Target: target} }
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View renders the input line.
func (m TargetInputModel) View() string {
	return "  " + m.Input.View()
}
