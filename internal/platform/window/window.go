// Package window runs the game in a desktop window using ebiten.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/games/breakout"
)

// errQuit ends RunGame without reporting a failure.
var errQuit = errors.New("window: quit")

// ReplaySaver persists finished games.
type ReplaySaver interface {
	SaveReplay(rec breakout.Recording) (int64, error)
}

// Options configures the window host.
type Options struct {
	GameID string
	Store  ReplaySaver
	Logger *log.Logger
	Scale  float64
}

// keyIDs maps window keys to the identifiers the simulation understands.
var keyIDs = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
}

// Host implements ebiten.Game around a Simulation.
type Host struct {
	cfg  config.BreakoutConfig
	opts Options
	log  *log.Logger

	sim     *breakout.Simulation
	sched   *breakout.Scheduler
	rec     *breakout.Recorder
	surface *ImageSurface
	saved   bool

	lastCursor int
}

// NewHost creates a host and its first game.
func NewHost(cfg config.BreakoutConfig, opts Options) (*Host, error) {
	if opts.GameID == "" {
		opts.GameID = "breakout"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Host{
		cfg:        cfg,
		opts:       opts,
		log:        logger.WithPrefix("window"),
		surface:    &ImageSurface{},
		lastCursor: -1,
	}
	if err := h.restart(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Host) restart() error {
	sim, err := breakout.NewSimulation(h.cfg)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	sched, err := breakout.NewScheduler(sim, h.surface, h.cfg.Loop)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	h.sim = sim
	h.sched = sched
	h.rec = breakout.NewRecorder(h.opts.GameID, sim)
	h.saved = false
	return nil
}

// Update is called by ebiten at its own cadence; the scheduler converts
// elapsed time into logical ticks.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.saveReplay()
		h.sched.Stop()
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !h.sim.Running() {
		h.saveReplay()
		if err := h.restart(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && h.sim.Running() {
		h.sched.SetPaused(!h.sched.Paused())
	}

	for key, id := range keyIDs {
		if inpututil.IsKeyJustPressed(key) {
			h.apply(core.KeyDown(id))
		}
		if inpututil.IsKeyJustReleased(key) {
			h.apply(core.KeyUp(id))
		}
	}

	// The window is the arena, so the surface offset is zero.
	if x, _ := ebiten.CursorPosition(); x != h.lastCursor {
		h.lastCursor = x
		h.apply(core.PointerMove(float64(x), 0))
	}

	h.sched.Advance(time.Now())
	if !h.sim.Running() {
		h.saveReplay()
	}
	return nil
}

func (h *Host) apply(ev core.InputEvent) {
	if h.sched.Accepts(ev) {
		h.rec.Apply(ev)
	}
}

// Draw renders the simulation and the overlay.
func (h *Host) Draw(screen *ebiten.Image) {
	h.surface.SetTarget(screen)
	h.sched.Render()

	w := int(h.cfg.Arena.Width)
	y := int(h.cfg.Arena.Height) / 2
	switch {
	case h.sim.Phase() == breakout.PhaseLost:
		drawCentered(screen, breakout.TextLost, w, y)
		drawCentered(screen, fmt.Sprintf("Score: %d   R restart   Q quit", h.sim.Score()), w, y+20)
	case h.sim.Phase() == breakout.PhaseWon:
		drawCentered(screen, breakout.TextWon, w, y)
		drawCentered(screen, fmt.Sprintf("Score: %d   R restart   Q quit", h.sim.Score()), w, y+20)
	case h.sched.Paused():
		drawCentered(screen, breakout.TextPause, w, y)
	}
}

// Layout fixes the logical screen to the arena size.
func (h *Host) Layout(int, int) (int, int) {
	return int(h.cfg.Arena.Width), int(h.cfg.Arena.Height)
}

func (h *Host) saveReplay() {
	if h.saved || h.opts.Store == nil {
		return
	}
	h.saved = true
	rec := h.rec.Recording()
	if rec.Ticks == 0 {
		return
	}
	id, err := h.opts.Store.SaveReplay(rec)
	if err != nil {
		h.log.Warn("cannot save replay", "error", err)
		return
	}
	h.log.Debug("replay saved", "id", id, "phase", rec.Phase, "score", rec.Score)
}

func drawCentered(screen *ebiten.Image, text string, width, y int) {
	// The debug font is 6px wide per glyph.
	x := (width - len(text)*6) / 2
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

// Run opens a window and plays until it is closed.
func Run(cfg config.BreakoutConfig, opts Options) error {
	host, err := NewHost(cfg, opts)
	if err != nil {
		return err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(cfg.Arena.Width*scale), int(cfg.Arena.Height*scale))
	ebiten.SetWindowTitle("Brick Arcade")
	ebiten.SetTPS(cfg.Loop.TickRate)

	if err := ebiten.RunGame(host); err != nil && !errors.Is(err, errQuit) {
		return fmt.Errorf("window: %w", err)
	}
	host.saveReplay()
	return nil
}
