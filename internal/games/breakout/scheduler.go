package breakout

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// ErrNoSurface is returned when a scheduler is created without a drawing surface.
var ErrNoSurface = errors.New("breakout: no drawing surface")

// Scheduler drives a Simulation at a fixed logical tick rate.
// Real elapsed time is accumulated and converted into whole ticks.
type Scheduler struct {
	sim     *Simulation
	surface core.Surface

	step       time.Duration
	maxCatchUp int

	acc     time.Duration
	last    time.Time
	started bool
	stopped bool
	paused  bool

	onTick func(TickResult)
}

// NewScheduler binds sim to a drawing surface. It fails before any tick is
// scheduled when the surface is missing.
func NewScheduler(sim *Simulation, surface core.Surface, loop config.LoopConfig) (*Scheduler, error) {
	if sim == nil {
		return nil, errors.New("breakout: nil simulation")
	}
	if surface == nil {
		return nil, ErrNoSurface
	}
	if loop.TickRate <= 0 {
		loop.TickRate = 60
	}
	if loop.MaxCatchUp <= 0 {
		loop.MaxCatchUp = 1
	}

	return &Scheduler{
		sim:        sim,
		surface:    surface,
		step:       time.Second / time.Duration(loop.TickRate),
		maxCatchUp: loop.MaxCatchUp,
	}, nil
}

// OnTick registers a callback invoked after every tick.
func (s *Scheduler) OnTick(fn func(TickResult)) {
	s.onTick = fn
}

// Step returns the logical tick duration.
func (s *Scheduler) Step() time.Duration {
	return s.step
}

// Simulation returns the driven simulation.
func (s *Scheduler) Simulation() *Simulation {
	return s.sim
}

// Advance runs as many ticks as the time since the previous call allows,
// up to the catch-up cap. Whole steps beyond the cap are dropped.
// Returns the number of ticks run.
func (s *Scheduler) Advance(now time.Time) int {
	if !s.started || s.paused || s.Halted() {
		// Paused or first frame: start measuring from now.
		s.last = now
		s.started = true
		return 0
	}

	elapsed := now.Sub(s.last)
	s.last = now
	if elapsed <= 0 {
		return 0
	}
	s.acc += elapsed

	ran := 0
	for s.acc >= s.step && ran < s.maxCatchUp {
		s.acc -= s.step
		res := s.sim.Tick()
		ran++
		if s.onTick != nil {
			s.onTick(res)
		}
		if res.Phase.Terminal() {
			s.acc = 0
			return ran
		}
	}
	if s.acc >= s.step {
		s.acc %= s.step
	}
	return ran
}

// Render draws the current state onto the surface.
func (s *Scheduler) Render() {
	s.sim.Draw(s.surface)
}

// Stop cancels all further ticks.
func (s *Scheduler) Stop() {
	s.stopped = true
}

// SetPaused suspends or resumes ticking. Time spent paused is not counted.
func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

// Accepts reports whether ev may reach the simulation now. While paused
// only key releases pass, so the paddle stays put and no key is left held
// on resume.
func (s *Scheduler) Accepts(ev core.InputEvent) bool {
	return !s.paused || ev.Kind == core.EventKeyUp
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Halted reports whether no further tick will ever run.
func (s *Scheduler) Halted() bool {
	return s.stopped || !s.sim.Running()
}

// Hooks are called by Run around every frame. Either may be nil.
type Hooks struct {
	// Before runs ahead of Advance; hosts drain queued input here.
	Before func()
	// After runs once the frame's ticks are done, with the number run.
	After func(ticks int)
}

// Run drives the scheduler from a ticker until ctx is cancelled, Stop is
// called or the simulation reaches a terminal phase. A frame is rendered
// before the first tick.
func (s *Scheduler) Run(ctx context.Context, hooks Hooks) error {
	ticker := time.NewTicker(s.step)
	defer ticker.Stop()

	s.Advance(time.Now())
	s.Render()
	if hooks.After != nil {
		hooks.After(0)
	}

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			if hooks.Before != nil {
				hooks.Before()
			}
			n := s.Advance(now)
			s.Render()
			if hooks.After != nil {
				hooks.After(n)
			}
			if s.Halted() {
				return nil
			}
		}
	}
}
