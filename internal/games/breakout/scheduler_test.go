package breakout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

func newTestScheduler(t *testing.T) (*Scheduler, *Simulation) {
	t.Helper()
	sim := newTestSim(t)
	sched, err := NewScheduler(sim, &recordingSurface{}, config.LoopConfig{TickRate: 60, MaxCatchUp: 5})
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return sched, sim
}

// losingSim puts the ball one tick away from falling past the paddle.
func losingSim(sim *Simulation) {
	sim.ball.X, sim.ball.Y = 400, 585
	sim.ball.DX, sim.ball.DY = 4, 4
	sim.paddle.X = 0
}

func TestNewSchedulerRequiresSurface(t *testing.T) {
	sim := newTestSim(t)
	_, err := NewScheduler(sim, nil, config.LoopConfig{TickRate: 60, MaxCatchUp: 5})
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
	if sim.TickCount() != 0 {
		t.Error("no tick may run when initialization fails")
	}
}

func TestAdvanceRunsWholeTicks(t *testing.T) {
	sched, sim := newTestScheduler(t)
	step := sched.Step()
	t0 := time.Unix(1000, 0)

	if n := sched.Advance(t0); n != 0 {
		t.Fatalf("first Advance ran %d ticks", n)
	}
	if n := sched.Advance(t0.Add(step / 2)); n != 0 {
		t.Errorf("half a step ran %d ticks", n)
	}
	if n := sched.Advance(t0.Add(step)); n != 1 {
		t.Errorf("one step ran %d ticks, want 1", n)
	}
	if n := sched.Advance(t0.Add(3 * step)); n != 2 {
		t.Errorf("two steps ran %d ticks, want 2", n)
	}
	if sim.TickCount() != 3 {
		t.Errorf("TickCount() = %d, want 3", sim.TickCount())
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	sched, sim := newTestScheduler(t)
	step := sched.Step()
	t0 := time.Unix(1000, 0)
	sched.Advance(t0)

	if n := sched.Advance(t0.Add(10 * step)); n != 5 {
		t.Errorf("ran %d ticks, want cap of 5", n)
	}
	// Steps beyond the cap are dropped, not deferred.
	if n := sched.Advance(t0.Add(10*step + step/2)); n != 0 {
		t.Errorf("ran %d ticks after the cap, want 0", n)
	}
	if sim.TickCount() != 5 {
		t.Errorf("TickCount() = %d, want 5", sim.TickCount())
	}
}

func TestAdvancePauseDoesNotAccumulate(t *testing.T) {
	sched, sim := newTestScheduler(t)
	step := sched.Step()
	t0 := time.Unix(1000, 0)
	sched.Advance(t0)

	sched.SetPaused(true)
	if n := sched.Advance(t0.Add(time.Second)); n != 0 {
		t.Errorf("paused Advance ran %d ticks", n)
	}
	sched.SetPaused(false)
	if n := sched.Advance(t0.Add(time.Second + step)); n != 1 {
		t.Errorf("after resume ran %d ticks, want 1", n)
	}
	if sim.TickCount() != 1 {
		t.Errorf("TickCount() = %d, want 1", sim.TickCount())
	}
}

func TestAdvanceStopsWhenTerminal(t *testing.T) {
	sched, sim := newTestScheduler(t)
	losingSim(sim)
	step := sched.Step()
	t0 := time.Unix(1000, 0)
	sched.Advance(t0)

	var results []TickResult
	sched.OnTick(func(res TickResult) { results = append(results, res) })

	if n := sched.Advance(t0.Add(4 * step)); n != 1 {
		t.Errorf("ran %d ticks, want 1", n)
	}
	if !sched.Halted() {
		t.Error("scheduler should halt once the game is lost")
	}
	if n := sched.Advance(t0.Add(8 * step)); n != 0 {
		t.Errorf("halted scheduler ran %d ticks", n)
	}
	if len(results) != 1 || results[0].Phase != PhaseLost {
		t.Errorf("OnTick results = %+v", results)
	}
}

func TestStopCancelsTicks(t *testing.T) {
	sched, sim := newTestScheduler(t)
	t0 := time.Unix(1000, 0)
	sched.Advance(t0)

	sched.Stop()
	if n := sched.Advance(t0.Add(time.Second)); n != 0 {
		t.Errorf("stopped scheduler ran %d ticks", n)
	}
	if !sched.Halted() || sim.TickCount() != 0 {
		t.Error("Stop should cancel all pending ticks")
	}
}

func TestRunExitsOnCancel(t *testing.T) {
	sched, _ := newTestScheduler(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	err := sched.Run(ctx, Hooks{
		After: func(int) {
			frames++
			if frames >= 3 {
				cancel()
			}
		},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if !sched.Halted() {
		t.Error("cancelled Run should leave the scheduler stopped")
	}
}

func TestAcceptsOnlyKeyUpWhilePaused(t *testing.T) {
	sched, _ := newTestScheduler(t)
	events := []core.InputEvent{
		core.KeyDown("ArrowLeft"),
		core.KeyUp("ArrowLeft"),
		core.PointerMove(300, 100),
	}
	for _, ev := range events {
		if !sched.Accepts(ev) {
			t.Errorf("running scheduler rejected %+v", ev)
		}
	}

	sched.SetPaused(true)
	for _, ev := range events {
		want := ev.Kind == core.EventKeyUp
		if got := sched.Accepts(ev); got != want {
			t.Errorf("paused Accepts(%+v) = %v, want %v", ev, got, want)
		}
	}
}

func TestRunExitsWhenTerminal(t *testing.T) {
	sched, sim := newTestScheduler(t)
	losingSim(sim)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	drained := 0
	err := sched.Run(ctx, Hooks{Before: func() { drained++ }})
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if sim.Phase() != PhaseLost {
		t.Errorf("phase = %s, want lost", sim.Phase())
	}
	if drained == 0 {
		t.Error("Before hook never ran")
	}
}

func TestRenderDrawsToSurface(t *testing.T) {
	sim := newTestSim(t)
	surf := &recordingSurface{}
	sched, err := NewScheduler(sim, surf, config.LoopConfig{TickRate: 60, MaxCatchUp: 5})
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	sched.Render()
	if len(surf.calls) == 0 {
		t.Error("Render drew nothing")
	}
}
