package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
	"github.com/vovakirdan/brick-arcade/internal/registry"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

// DefaultKeyHold is how long a terminal key counts as held after its last repeat.
const DefaultKeyHold = 120 * time.Millisecond

// recordingGame is implemented by games that can hand out their input log.
type recordingGame interface {
	Recording() breakout.Recording
}

// pointerGame is implemented by games that accept pointer input. ArenaX
// maps a screen column to the game's horizontal coordinate.
type pointerGame interface {
	ArenaX(col int) float64
}

// stoppableGame is implemented by games that own a tick loop to tear down.
type stoppableGame interface {
	Stop()
}

// Options configures a game Model.
type Options struct {
	Store   *storage.Store
	Logger  *log.Logger
	KeyHold time.Duration
	// InSession makes Back and Quit hand control to an enclosing model
	// instead of ending the program.
	InSession bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	held       *HeldKeys
	keyMapper  *KeyMapper
	help       help.Model
	gameState  core.GameState
	inSession  bool
	paused     bool
	quitting   bool
	backToMenu bool
	saved      bool // Whether the current session's replay has been saved
	lastReplay int64
}

// NewModel creates a new Bubble Tea model for the given game.
// The game must already have been Reset.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.KeyHold <= 0 {
		opts.KeyHold = DefaultKeyHold
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		store:      opts.Store,
		logger:     opts.Logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		held:       NewHeldKeys(opts.KeyHold),
		keyMapper:  NewKeyMapper(),
		help:       h,
		inSession:  opts.InSession,
	}
}

// gameRows leaves the last terminal row for the help bar.
func gameRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveReplay()
		m.stopGame()
		m.quitting = true
		return m, tea.Quit
	}

	if id, ok := KeyID(action); ok {
		m.held.Press(id, now, &m.inputFrame)
		return m, nil
	}

	switch action {
	case core.ActionPause:
		if !m.gameState.GameOver {
			m.paused = !m.paused
			m.game.SetPaused(m.paused)
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			return m.restart()
		}
	case core.ActionBack:
		if m.inSession && (m.gameState.GameOver || m.paused) {
			m.saveReplay()
			m.stopGame()
			m.backToMenu = true
		}
	}

	return m, nil
}

// handleMouse moves the paddle under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pg, ok := m.game.(pointerGame)
	if !ok || msg.Action != tea.MouseActionMotion {
		return m, nil
	}
	m.inputFrame.Add(core.PointerMove(pg.ArenaX(msg.X), 0))
	return m, nil
}

// handleResize only resizes the screen; the arena keeps its logical size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick feeds the frame's input to the game and lets it catch up.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.held.Expire(now, &m.inputFrame)

	result := m.game.Step(now, m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.saved {
		m.saveReplay()
	}

	return m, frameCmd(m.config.TickRate)
}

// restart re-creates the game after it ended.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if err := m.game.Reset(m.config); err != nil {
		m.logger.Error("cannot restart game", "game", m.game.ID(), "error", err)
		m.quitting = true
		return m, tea.Quit
	}
	m.gameState = m.game.State()
	m.paused = false
	m.saved = false
	m.held.Reset()
	m.inputFrame.Clear()
	return m, nil
}

func (m *Model) stopGame() {
	if sg, ok := m.game.(stoppableGame); ok {
		sg.Stop()
	}
}

// saveReplay stores the current session once.
func (m *Model) saveReplay() {
	if m.saved || m.store == nil {
		return
	}
	rg, ok := m.game.(recordingGame)
	if !ok {
		return
	}
	rec := rg.Recording()
	if rec.Ticks == 0 {
		return
	}

	m.saved = true
	id, err := m.store.SaveReplay(rec)
	if err != nil {
		m.logger.Warn("cannot save replay", "game", m.game.ID(), "error", err)
		return
	}
	m.lastReplay = id
	m.logger.Debug("replay saved", "id", id, "phase", rec.Phase, "score", rec.Score, "ticks", rec.Ticks)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastReplayID returns the ID of the most recently saved replay, or 0.
func (m Model) LastReplayID() int64 {
	return m.lastReplay
}

// Run starts the Bubble Tea program with the given game.
// The game is reset before the program starts so config errors surface early.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	if err := game.Reset(cfg); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
