package breakout

import (
	"fmt"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Phase is the simulation's lifecycle state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "running":
		return PhaseRunning, nil
	case "won":
		return PhaseWon, nil
	case "lost":
		return PhaseLost, nil
	default:
		return PhaseRunning, fmt.Errorf("breakout: unknown phase %q", s)
	}
}

// Terminal reports whether the phase is Won or Lost.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventBrickBroken EventKind = iota
	EventWallBounce
	EventCeilingBounce
	EventPaddleBounce
	EventMiss
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventBrickBroken:
		return "brick"
	case EventWallBounce:
		return "wall"
	case EventCeilingBounce:
		return "ceiling"
	case EventPaddleBounce:
		return "paddle"
	case EventMiss:
		return "miss"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is emitted by a tick. Brick is the grid index for EventBrickBroken
// and -1 otherwise.
type Event struct {
	Kind  EventKind
	Brick int
}

// TickResult reports what a single tick did.
type TickResult struct {
	Tick   uint64
	Phase  Phase
	Events []Event
}

// Simulation owns all game state. It is not safe for concurrent use: a single
// goroutine must own it and feed it input between ticks.
type Simulation struct {
	cfg    config.BreakoutConfig
	layout Layout
	arena  Arena
	policy string
	points int

	ballColor   core.Color
	paddleColor core.Color

	ball    Ball
	paddle  Paddle
	grid    Grid
	tracker Tracker

	score int
	phase Phase
	tick  uint64
}

// NewSimulation validates cfg and builds a simulation in its initial state.
func NewSimulation(cfg config.BreakoutConfig) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := LayoutFromConfig(cfg.Bricks)
	if err != nil {
		return nil, fmt.Errorf("breakout: palette: %w", err)
	}
	ballColor, err := core.ParseColor(cfg.Ball.Color)
	if err != nil {
		return nil, fmt.Errorf("breakout: ball colour: %w", err)
	}
	paddleColor, err := core.ParseColor(cfg.Paddle.Color)
	if err != nil {
		return nil, fmt.Errorf("breakout: paddle colour: %w", err)
	}

	s := &Simulation{
		cfg:         cfg,
		layout:      layout,
		arena:       Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		policy:      cfg.Bricks.HitPolicy,
		points:      cfg.Scoring.BrickPoints,
		ballColor:   ballColor,
		paddleColor: paddleColor,
	}
	s.Reset()
	return s, nil
}

// Reset rebuilds the grid, restores the ball and paddle, zeroes the score
// and tick counter, releases held keys and returns to Running.
func (s *Simulation) Reset() {
	s.grid = NewGrid(s.layout)
	s.ball = Ball{
		X:      s.cfg.Ball.StartX,
		Y:      s.cfg.Ball.StartY,
		DX:     s.cfg.Ball.DX,
		DY:     s.cfg.Ball.DY,
		Radius: s.cfg.Ball.Radius,
	}
	s.paddle = Paddle{
		X:      (s.arena.Width - s.cfg.Paddle.Width) / 2,
		Y:      s.arena.Height - s.cfg.Paddle.Height - s.cfg.Paddle.BottomOffset,
		Width:  s.cfg.Paddle.Width,
		Height: s.cfg.Paddle.Height,
	}
	s.tracker = NewTracker(s.arena.Width, s.cfg.Paddle.Width, s.cfg.Paddle.Speed)
	s.score = 0
	s.phase = PhaseRunning
	s.tick = 0
}

// Tick advances the simulation by one logical step.
// Order: bricks, ball and walls, bottom and paddle, paddle movement.
// A tick that clears the grid or misses the ball stops where it happened.
func (s *Simulation) Tick() TickResult {
	if s.phase.Terminal() {
		return TickResult{Tick: s.tick, Phase: s.phase}
	}

	s.tick++
	res := TickResult{Tick: s.tick}

	// Bricks are tested against the position drawn last frame.
	hits := ScanBricks(&s.grid, s.ball.X, s.ball.Y, s.policy)
	if s.apply(&res, stepReport{hits: hits}) {
		return res
	}

	walls := StepBall(&s.ball, s.arena)
	outcome := ResolvePaddle(walls, s.ball, s.paddle)
	if s.apply(&res, stepReport{walls: walls, paddle: outcome}) {
		return res
	}

	s.paddle.X = s.tracker.Resolve(s.paddle.X)
	res.Phase = s.phase
	return res
}

type stepReport struct {
	hits   BrickHits
	walls  WallHits
	paddle PaddleOutcome
}

// apply is the only place score and phase change.
// It reports whether the tick must stop.
func (s *Simulation) apply(res *TickResult, rep stepReport) bool {
	for _, idx := range rep.hits.Indices {
		b := &s.grid.Bricks[idx]
		if !b.Alive {
			continue
		}
		b.Alive = false
		s.ball.DY = -s.ball.DY
		s.score += s.points
		res.Events = append(res.Events, Event{Kind: EventBrickBroken, Brick: idx})
	}
	if rep.hits.Count() > 0 && s.grid.CountAlive() == 0 {
		s.phase = PhaseWon
		res.Events = append(res.Events, Event{Kind: EventCleared, Brick: -1})
	}

	if rep.walls.Side {
		res.Events = append(res.Events, Event{Kind: EventWallBounce, Brick: -1})
	}
	if rep.walls.Top {
		res.Events = append(res.Events, Event{Kind: EventCeilingBounce, Brick: -1})
	}

	switch rep.paddle {
	case PaddleBounce:
		s.ball.DY = -s.ball.DY
		res.Events = append(res.Events, Event{Kind: EventPaddleBounce, Brick: -1})
	case PaddleMiss:
		s.phase = PhaseLost
		res.Events = append(res.Events, Event{Kind: EventMiss, Brick: -1})
	}

	res.Phase = s.phase
	return s.phase.Terminal()
}

// HandleInput routes a host input event. Input is ignored once the
// simulation has reached a terminal phase.
func (s *Simulation) HandleInput(ev core.InputEvent) {
	switch ev.Kind {
	case core.EventKeyDown:
		s.KeyDown(ev.Key)
	case core.EventKeyUp:
		s.KeyUp(ev.Key)
	case core.EventPointerMove:
		s.PointerMove(ev.LocalX())
	}
}

// KeyDown marks a direction key as held.
func (s *Simulation) KeyDown(key string) {
	if s.phase.Terminal() {
		return
	}
	s.tracker.Press(key)
}

// KeyUp releases a direction key.
func (s *Simulation) KeyUp(key string) {
	if s.phase.Terminal() {
		return
	}
	s.tracker.Release(key)
}

// PointerMove centres the paddle on an arena-local pointer x when it is
// over the arena.
func (s *Simulation) PointerMove(localX float64) {
	if s.phase.Terminal() {
		return
	}
	if x, ok := s.tracker.PointerTarget(localX); ok {
		s.paddle.X = x
	}
}

// Draw renders bricks, ball, paddle and score onto dst.
func (s *Simulation) Draw(dst core.Surface) {
	dst.Clear()
	for _, b := range s.grid.Bricks {
		if b.Alive {
			dst.FillRect(b.Box.X, b.Box.Y, b.Box.W, b.Box.H, b.Color)
		}
	}
	dst.FillCircle(s.ball.X, s.ball.Y, s.ball.Radius, s.ballColor)
	dst.FillRect(s.paddle.X, s.paddle.Y, s.paddle.Width, s.paddle.Height, s.paddleColor)
	dst.Text(8, 20, fmt.Sprintf("Score: %d", s.score), core.ColorWhite)
}

// Accessors.

func (s *Simulation) Ball() Ball                    { return s.ball }
func (s *Simulation) Paddle() Paddle                { return s.paddle }
func (s *Simulation) Arena() Arena                  { return s.arena }
func (s *Simulation) Score() int                    { return s.score }
func (s *Simulation) Phase() Phase                  { return s.phase }
func (s *Simulation) Running() bool                 { return s.phase == PhaseRunning }
func (s *Simulation) TickCount() uint64             { return s.tick }
func (s *Simulation) BricksAlive() int              { return s.grid.CountAlive() }
func (s *Simulation) Config() config.BreakoutConfig { return s.cfg }

// Bricks returns a copy of the brick grid in scan order.
func (s *Simulation) Bricks() []Brick {
	return s.grid.Clone().Bricks
}
