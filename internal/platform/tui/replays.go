package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
	"github.com/vovakirdan/brick-arcade/internal/registry"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// Replay browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 24  // Width of game list sidebar
	maxReplays         = 100 // Max replays to load
)

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Verify   key.Binding
	Delete   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Verify, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel lists stored replays per game and re-simulates them on request.
type ReplayBrowserModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	replays     []storage.ReplayInfo
	table       table.Model
	help        help.Model
	keys        ReplayKeyMap
	status      string
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewReplayBrowserModel creates a new replay browser.
func NewReplayBrowserModel(store *storage.Store, width, height int) ReplayBrowserModel {
	h := help.New()
	h.ShowAll = false

	m := ReplayBrowserModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultReplayKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with columns sized to the window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Result", Width: 8},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 8},
		{Title: "Inputs", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentGame returns the selected game ID, or "" when none are registered.
func (m *ReplayBrowserModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// loadReplays loads replays for the selected game.
func (m *ReplayBrowserModel) loadReplays() {
	m.replays = nil
	if m.store != nil {
		replays, err := m.store.ListReplays(m.currentGame(), maxReplays)
		if err != nil {
			m.status = fmt.Sprintf("cannot load replays: %v", err)
		} else {
			m.replays = replays
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current replays.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Phase.String(),
			strconv.Itoa(r.Score),
			strconv.FormatUint(r.Ticks, 10),
			strconv.Itoa(r.EventCount),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectedID returns the ID of the highlighted replay.
func (m *ReplayBrowserModel) selectedID() (int64, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return 0, false
	}
	return m.replays[i].ID, true
}

// verifySelected re-simulates the highlighted replay and reports the result.
func (m *ReplayBrowserModel) verifySelected() {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	rec, err := m.store.Replay(id)
	if err != nil {
		m.status = fmt.Sprintf("replay %d: %v", id, err)
		return
	}
	match, err := breakout.Verify(rec)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("replay %d: %v", id, err)
	case match:
		m.status = fmt.Sprintf("replay %d reproduces: %s with %d points after %d ticks", id, rec.Phase, rec.Score, rec.Ticks)
	default:
		m.status = fmt.Sprintf("replay %d diverged from its recording", id)
	}
}

// deleteSelected removes the highlighted replay.
func (m *ReplayBrowserModel) deleteSelected() {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	err := m.store.DeleteReplay(id)
	switch {
	case errors.Is(err, storage.ErrReplayNotFound):
		m.status = fmt.Sprintf("replay %d is already gone", id)
	case err != nil:
		m.status = fmt.Sprintf("cannot delete replay %d: %v", id, err)
	default:
		m.status = fmt.Sprintf("deleted replay %d", id)
	}
	m.loadReplays()
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.status = ""
				m.loadReplays()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.status = ""
				m.loadReplays()
			}
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			if m.store != nil {
				m.verifySelected()
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.store != nil {
				m.deleteSelected()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	browserTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "REPLAYS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("REPLAYS - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(browserTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content)
	}
	b.WriteString(content)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the game list.
func (m ReplayBrowserModel) renderSidebar() string {
	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return panelStyle.Width(sidebarWidth).Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m ReplayBrowserModel) renderTableContent() string {
	if len(m.replays) == 0 {
		return emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// RunReplayBrowser runs the replay browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplayBrowser(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: replays: %w", err)
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
