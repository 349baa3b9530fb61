package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTabs() []Tab {
	return []Tab{
		{ID: "recon", Label: "Recon", Badge: 2},
		{ID: "files", Label: "Files"},
		{ID: "syntax", Label: "Syntax"},
	}
}

func TestTabBar_Navigation(t *testing.T) {
	m := NewTabBar(testTabs())
	assert.Equal(t, 0, m.Active)

	m.Next()
	m.Next()
	assert.Equal(t, 2, m.Active)
	m.Next()
	assert.Equal(t, 0, m.Active, "wraps forward")
	m.Prev()
	assert.Equal(t, 2, m.Active, "wraps backward")

	m.SetActive(1)
	assert.Equal(t, 1, m.Active)
	m.SetActive(9)
	assert.Equal(t, 1, m.Active, "out of range ignored")

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "files", cur.ID)
	assert.Equal(t, 2, m.Index("syntax"))
	assert.Equal(t, -1, m.Index("nope"))
}

func TestTabBar_Empty(t *testing.T) {
	var m TabBarModel
	m.Next()
	m.Prev()
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Empty(t, m.View())
}

func TestTabBar_SetTabsResetsActive(t *testing.T) {
	m := NewTabBar(testTabs())
	m.SetActive(2)
	m.SetTabs(testTabs()[:1])
	assert.Equal(t, 0, m.Active)
}

func TestTabBar_View(t *testing.T) {
	m := NewTabBar(testTabs())
	m.SetWidth(120)
	view := m.View()
	assert.Contains(t, view, "Recon 2")
	assert.Contains(t, view, "Files")

	m.SetWidth(30)
	collapsed := m.View()
	assert.Contains(t, collapsed, "[1/3]")
	assert.NotContains(t, collapsed, "Files")
}

func TestTabBar_MouseClick(t *testing.T) {
	m := NewTabBar(testTabs())
	m.Row = 3
	m.SetWidth(120)

	// "Recon 2" plus padding is 11 cells wide; x=12 lands on Files.
	m, _ = m.Update(tea.MouseMsg{X: 12, Y: 3, Action: tea.MouseActionRelease})
	assert.Equal(t, 1, m.Active)

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionRelease})
	assert.Equal(t, 1, m.Active, "clicks on other rows are ignored")
}

func TestStatusBar_View(t *testing.T) {
	sb := NewStatusBar()
	sb.Hints = []KeyHint{{Key: "Enter", Desc: "Render"}}
	sb.Target = "example.com"
	sb.Dorks = 19
	sb.Extra = "cleared"
	sb.SetWidth(100)

	view := sb.View()
	assert.Contains(t, view, "Enter")
	assert.Contains(t, view, "Render")
	assert.Contains(t, view, "example.com")
	assert.Contains(t, view, "19 dorks")
	assert.Contains(t, view, "cleared")
}

func TestTargetInput_Submit(t *testing.T) {
	m := NewTargetInput()
	require.True(t, m.Focused())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" example.com ")})
	assert.Equal(t, "example.com", m.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, TargetSubmitMsg{Target: "example.com"}, cmd())
}

func TestTargetInput_BlurredIgnoresKeys(t *testing.T) {
	m := NewTargetInput()
	m.Blur()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Value())

	m.Focus()
	m.Input.SetValue("abc")
	m.Reset()
	assert.Empty(t, m.Value())
	assert.True(t, m.Focused())
}
