package breakout

import (
	"fmt"
	"time"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
	"github.com/vovakirdan/brick-arcade/internal/registry"
)

// Overlay text shown once the game has ended.
const (
	TextLost  = "GAME OVER"
	TextWon   = "CLEARED!"
	TextPause = "PAUSED"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Simulation and its Scheduler to the registry.Game interface
// for cell-based hosts.
type Game struct {
	id     string
	policy string

	runtime  core.RuntimeConfig
	cfg      config.BreakoutConfig
	sim      *Simulation
	sched    *Scheduler
	surface  *core.ScreenSurface
	recorder *Recorder
}

// New creates a Breakout game using the configured hit policy.
func New() *Game {
	return &Game{id: "breakout"}
}

// NewStrict creates a Breakout game that breaks at most one brick per tick.
func NewStrict() *Game {
	return &Game{id: "breakout_strict", policy: config.HitPolicyFirst}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.policy == config.HitPolicyFirst {
		return "Breakout (one brick per tick)"
	}
	return "Breakout"
}

// Reset loads the config and starts a fresh simulation.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		return fmt.Errorf("breakout: %w", err)
	}
	if g.policy != "" {
		cfg.Bricks.HitPolicy = g.policy
	}
	if runtime.TickRate > 0 {
		cfg.Loop.TickRate = runtime.TickRate
	}
	return g.start(runtime, cfg)
}

func (g *Game) start(runtime core.RuntimeConfig, cfg config.BreakoutConfig) error {
	sim, err := NewSimulation(cfg)
	if err != nil {
		return err
	}

	screen := core.NewScreen(runtime.ScreenW, runtime.ScreenH)
	surface := core.NewScreenSurface(screen, cfg.Arena.Width, cfg.Arena.Height)
	sched, err := NewScheduler(sim, surface, cfg.Loop)
	if err != nil {
		return err
	}

	g.runtime = runtime
	g.cfg = cfg
	g.sim = sim
	g.sched = sched
	g.surface = surface
	g.recorder = NewRecorder(g.id, sim)
	return nil
}

// Step applies the frame's input, then lets the scheduler catch up to now.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{}
	}
	for _, ev := range in.Events {
		if g.sched.Accepts(ev) {
			g.recorder.Apply(ev)
		}
	}
	ticks := g.sched.Advance(now)
	return core.StepResult{State: g.State(), Ticks: ticks}
}

// SetPaused suspends or resumes the scheduler.
func (g *Game) SetPaused(paused bool) {
	if g.sched != nil {
		g.sched.SetPaused(paused)
	}
}

// Stop ends the session; later Steps run no ticks until Reset.
func (g *Game) Stop() {
	if g.sched != nil {
		g.sched.Stop()
	}
}

// Render draws the arena and any overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	if g.sim == nil {
		return
	}
	g.surface.SetScreen(dst)
	g.sched.Render()

	switch {
	case g.sim.Phase() == PhaseLost:
		g.drawOverlay(dst, TextLost)
	case g.sim.Phase() == PhaseWon:
		g.drawOverlay(dst, TextWon)
	case g.sched.Paused():
		dst.DrawTextCentered(dst.Height()/2, TextPause)
	}
}

func (g *Game) drawOverlay(dst *core.Screen, title string) {
	mid := dst.Height() / 2
	dst.DrawTextColored((dst.Width()-len(title))/2, mid-1, title, core.ColorRed)
	dst.DrawTextCentered(mid, fmt.Sprintf("Score: %d", g.sim.Score()))
	dst.DrawTextCentered(mid+2, "R restart  Q quit")
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	phase := g.sim.Phase()
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: phase.Terminal(),
		Won:      phase == PhaseWon,
		Paused:   g.sched.Paused(),
	}
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Recording returns the current session's recording.
func (g *Game) Recording() Recording {
	return g.recorder.Recording()
}

// Register the game with the registry.
func init() {
	registry.Register("breakout", func() registry.Game { return New() })
	registry.Register("breakout_strict", func() registry.Game { return NewStrict() })
}

// ArenaX maps a column of the last rendered screen to an arena x-coordinate.
func (g *Game) ArenaX(col int) float64 {
	if g.surface == nil {
		return 0
	}
	return g.surface.ArenaX(col)
}
