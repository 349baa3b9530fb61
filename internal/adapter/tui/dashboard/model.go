package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dorkboard/internal/adapter/tui/components"
	"dorkboard/internal/adapter/tui/dashboard/tabs"
	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/adapter/tui/uxerror"
	"dorkboard/internal/domain"
	"dorkboard/internal/usecase"
)

// Ensure *DashboardModel satisfies tea.Model.
var _ tea.Model = (*DashboardModel)(nil)

// syntaxTabID is the tab bar ID of the explainer tab, which always comes last.
// Catalog IDs cannot start with "_", so it never shadows a category.
const syntaxTabID = "_syntax"

// The tab bar sits below the header and target input.
const (
	tabRow  = 2
	chromeH = 4 // header + input + tab bar + status bar
)

// DashboardDeps are dependencies for the dashboard.
type DashboardDeps struct {
	Catalog  *domain.Catalog
	Renderer *usecase.Renderer
	Plain    tabs.PlainFunc // markdown-to-text for card descriptions; nil shows raw text
	Logger   *slog.Logger
	ASCII    bool   // plain ASCII styling for the explainer
	Target   string // optional target rendered on start
}

// DashboardModel is the root Bubble Tea model for the dork dashboard.
type DashboardModel struct {
	deps DashboardDeps
	ctx  context.Context

	input  components.TargetInputModel
	tabBar components.TabBarModel

	overview tabs.OverviewModel
	cards    tabs.CardsModel
	syntax   tabs.SyntaxModel

	// Render state; empty target means the welcome screen is shown.
	target   string
	rendered []domain.RenderedCategory
	notice   string

	width  int
	height int
}

// NewDashboardModel creates the dashboard model.
func NewDashboardModel(ctx context.Context, deps DashboardDeps) *DashboardModel {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	categories := deps.Catalog.Categories()

	tabItems := make([]components.Tab, 0, len(categories)+1)
	for _, cat := range categories {
		tabItems = append(tabItems, components.Tab{ID: cat.ID, Label: cat.Name})
	}
	tabItems = append(tabItems, components.Tab{ID: syntaxTabID, Label: "Syntax"})

	tabBar := components.NewTabBar(tabItems)
	tabBar.Row = tabRow

	m := &DashboardModel{
		deps:     deps,
		ctx:      ctx,
		input:    components.NewTargetInput(),
		tabBar:   tabBar,
		overview: tabs.NewOverview(categories),
		cards:    tabs.NewCards(deps.Plain),
		syntax:   tabs.NewSyntax(categories, deps.ASCII),
	}
	if deps.Target != "" {
		m.input.Input.SetValue(deps.Target)
	}
	return m
}

// Init renders the initial target, if any, and starts the cursor blinking.
func (m *DashboardModel) Init() tea.Cmd {
	if t := m.input.Value(); t != "" {
		return m.submit(t)
	}
	return m.input.Focus()
}

// Target returns the target currently rendered, or "" on the welcome screen.
func (m *DashboardModel) Target() string {
	return m.target
}

// Update handles messages.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case components.TargetSubmitMsg:
		return m, m.submit(msg.Target)

	case RenderResultMsg:
		m.applyResult(msg)
		return m, nil

	case tea.MouseMsg:
		if msg.Y == tabRow {
			m.tabBar, _ = m.tabBar.Update(msg)
			m.syncTab()
			return m, nil
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlR:
			return m, m.clear()
		case tea.KeyTab:
			m.tabBar.Next()
			m.syncTab()
			return m, nil
		case tea.KeyShiftTab:
			m.tabBar.Prev()
			m.syncTab()
			return m, nil
		case tea.KeyEsc:
			if m.input.Focused() {
				m.input.Blur()
				return m, nil
			}
		}

		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		if msg.Type == tea.KeyRunes {
			switch key := string(msg.Runes); key {
			case "q":
				return m, tea.Quit
			case "/", "i":
				return m, m.input.Focus()
			case "1", "2", "3", "4", "5", "6", "7", "8", "9":
				n, _ := strconv.Atoi(key)
				m.tabBar.SetActive(n - 1)
				m.syncTab()
				return m, nil
			}
		}
	}

	// Delegate scrolling to the visible pane.
	var cmd tea.Cmd
	switch {
	case m.onSyntax():
		m.syntax, cmd = m.syntax.Update(msg)
	case m.target != "":
		m.cards, cmd = m.cards.Update(msg)
	}
	return m, cmd
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	var content string
	switch {
	case m.onSyntax():
		content = m.syntax.View()
	case m.target == "":
		content = m.overview.View()
	default:
		content = m.cards.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.input.View(),
		m.tabBar.View(),
		lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content),
		m.statusBar(),
	)
}

func (m *DashboardModel) header() string {
	title := theme.Title.Render(" dorkboard ")
	if m.target == "" {
		return title + theme.TextMuted.Render("Google dork visualizer")
	}
	return title + theme.Banner.Render("Current target: "+theme.BannerTarget.Render(m.target))
}

func (m *DashboardModel) statusBar() string {
	hints := []components.KeyHint{
		{Key: "Enter", Desc: "Render"},
		{Key: "Tab", Desc: "Switch"},
	}
	if m.input.Focused() {
		hints = append(hints, components.KeyHint{Key: "Esc", Desc: "Browse"})
	} else {
		hints = append(hints,
			components.KeyHint{Key: "1-9", Desc: "Jump"},
			components.KeyHint{Key: "/", Desc: "Edit"},
			components.KeyHint{Key: "q", Desc: "Quit"},
		)
	}
	hints = append(hints, components.KeyHint{Key: "Ctrl+R", Desc: "Clear"})

	sb := components.NewStatusBar()
	sb.Hints = hints
	sb.Target = m.target
	sb.Dorks = m.deps.Catalog.DorkCount()
	sb.Extra = m.notice
	sb.SetWidth(m.width)
	return sb.View()
}

func (m *DashboardModel) contentHeight() int {
	h := m.height - chromeH
	if h < 5 {
		h = 5
	}
	return h
}

func (m *DashboardModel) layout() {
	h := m.contentHeight()
	m.input.SetWidth(m.width)
	m.tabBar.SetWidth(m.width)
	m.overview.SetSize(m.width, h)
	m.cards.SetSize(m.width, h)
	m.syntax.SetSize(m.width, h)
}

func (m *DashboardModel) onSyntax() bool {
	tab, ok := m.tabBar.Current()
	return ok && tab.ID == syntaxTabID
}

// submit validates target and starts rendering. An empty target keeps the
// welcome screen and shows a prompt instead of an error.
func (m *DashboardModel) submit(raw string) tea.Cmd {
	target, err := domain.NormalizeTarget(raw)
	if err != nil {
		m.overview.SetError(uxerror.Humanize(err).Render())
		m.notice = ""
		return m.input.Focus()
	}
	m.notice = "rendering" + theme.SymbolEllipsis
	return renderCmd(m.ctx, m.deps.Renderer, m.deps.Catalog, target)
}

func (m *DashboardModel) applyResult(msg RenderResultMsg) {
	if msg.Err != nil {
		if !errors.Is(msg.Err, context.Canceled) {
			m.deps.Logger.Warn("render failed", "error", msg.Err)
		}
		m.overview.SetError(uxerror.Humanize(msg.Err).Render())
		m.target, m.rendered, m.notice = "", nil, ""
		return
	}

	m.target = msg.Target
	m.rendered = msg.Categories
	m.notice = ""
	m.overview.SetError("")
	m.overview.IncrementRenders()
	m.input.Blur()

	badged := make([]components.Tab, len(m.tabBar.Tabs))
	copy(badged, m.tabBar.Tabs)
	for i := range badged {
		if rc := m.renderedCategory(badged[i].ID); rc != nil {
			badged[i].Badge = len(rc.Dorks)
		}
	}
	m.tabBar.SetTabs(badged)
	m.syncTab()
}

// clear resets to the welcome screen with an empty, focused input.
func (m *DashboardModel) clear() tea.Cmd {
	m.target = ""
	m.rendered = nil
	m.notice = "cleared"
	m.overview.SetError("")

	plain := make([]components.Tab, len(m.tabBar.Tabs))
	copy(plain, m.tabBar.Tabs)
	for i := range plain {
		plain[i].Badge = 0
	}
	m.tabBar.SetTabs(plain)
	m.tabBar.SetActive(0)
	m.cards.SetCategory(domain.RenderedCategory{})
	return m.input.Reset()
}

// syncTab points the card view at the active category.
func (m *DashboardModel) syncTab() {
	tab, ok := m.tabBar.Current()
	if !ok || tab.ID == syntaxTabID {
		return
	}
	if rc := m.renderedCategory(tab.ID); rc != nil {
		m.cards.SetCategory(*rc)
	}
}

func (m *DashboardModel) renderedCategory(id string) *domain.RenderedCategory {
	for i := range m.rendered {
		if m.rendered[i].ID == id {
			return &m.rendered[i]
		}
	}
	return nil
}
