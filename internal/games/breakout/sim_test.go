package breakout

import (
	"testing"

	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	sim, err := NewSimulation(config.DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return sim
}

// killAllBut destroys every brick except the one at keep.
func killAllBut(s *Simulation, keep int) {
	for i := range s.grid.Bricks {
		s.grid.Bricks[i].Alive = i == keep
	}
}

func hasEvent(res TickResult, kind EventKind) bool {
	for _, ev := range res.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestNewSimulationInitialState(t *testing.T) {
	sim := newTestSim(t)

	b := sim.Ball()
	if b.X != 400 || b.Y != 500 || b.DX != 4 || b.DY != -4 || b.Radius != 8 {
		t.Errorf("unexpected ball: %+v", b)
	}
	p := sim.Paddle()
	if p.X != 350 || p.Width != 100 || p.Y != 575 {
		t.Errorf("unexpected paddle: %+v", p)
	}
	if sim.BricksAlive() != 40 {
		t.Errorf("BricksAlive() = %d, want 40", sim.BricksAlive())
	}
	if sim.Score() != 0 || sim.Phase() != PhaseRunning || sim.TickCount() != 0 {
		t.Errorf("unexpected start: score=%d phase=%s tick=%d", sim.Score(), sim.Phase(), sim.TickCount())
	}
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.Palette = nil
	if _, err := NewSimulation(cfg); err == nil {
		t.Fatal("expected error for empty palette")
	}
}

func TestTickMovesBallByVelocity(t *testing.T) {
	sim := newTestSim(t)

	for i := 1; i <= 10; i++ {
		before := sim.Ball()
		res := sim.Tick()
		after := sim.Ball()

		if res.Tick != uint64(i) {
			t.Fatalf("tick %d: result tick = %d", i, res.Tick)
		}
		if after.X != before.X+before.DX || after.Y != before.Y+before.DY {
			t.Fatalf("tick %d: ball moved from (%v,%v) to (%v,%v) with velocity (%v,%v)",
				i, before.X, before.Y, after.X, after.Y, before.DX, before.DY)
		}
	}
}

func TestSideWallReflectsDX(t *testing.T) {
	sim := newTestSim(t)
	sim.ball.X, sim.ball.Y = 790, 300
	sim.ball.DX, sim.ball.DY = 4, -4

	res := sim.Tick()

	b := sim.Ball()
	if b.X != 794 || b.Y != 296 {
		t.Errorf("ball at (%v,%v), want (794,296)", b.X, b.Y)
	}
	if b.DX != -4 || b.DY != -4 {
		t.Errorf("velocity (%v,%v), want (-4,-4)", b.DX, b.DY)
	}
	if !hasEvent(res, EventWallBounce) {
		t.Error("expected wall bounce event")
	}
}

func TestCeilingReflectsDY(t *testing.T) {
	sim := newTestSim(t)
	sim.ball.X, sim.ball.Y = 20, 14
	sim.ball.DX, sim.ball.DY = 4, -4

	res := sim.Tick()

	// Moves to (24,10); next y 6 < radius.
	if b := sim.Ball(); b.DY != 4 {
		t.Errorf("DY = %v, want 4", b.DY)
	}
	if !hasEvent(res, EventCeilingBounce) {
		t.Error("expected ceiling bounce event")
	}
}

func TestPaddleBounce(t *testing.T) {
	sim := newTestSim(t)
	sim.ball.X, sim.ball.Y = 400, 585
	sim.ball.DX, sim.ball.DY = 4, 4

	res := sim.Tick()

	// Moves to (404,589); next y 593 > 592, paddle spans (350,450).
	b := sim.Ball()
	if b.X != 404 || b.Y != 589 {
		t.Errorf("ball at (%v,%v), want (404,589)", b.X, b.Y)
	}
	if b.DY != -4 {
		t.Errorf("DY = %v, want -4", b.DY)
	}
	if sim.Phase() != PhaseRunning {
		t.Errorf("phase = %s, want running", sim.Phase())
	}
	if !hasEvent(res, EventPaddleBounce) {
		t.Error("expected paddle bounce event")
	}
}

func TestMissLoses(t *testing.T) {
	sim := newTestSim(t)
	sim.ball.X, sim.ball.Y = 400, 585
	sim.ball.DX, sim.ball.DY = 4, 4
	sim.paddle.X = 0

	res := sim.Tick()

	if sim.Phase() != PhaseLost || res.Phase != PhaseLost {
		t.Fatalf("phase = %s, want lost", sim.Phase())
	}
	if !hasEvent(res, EventMiss) {
		t.Error("expected miss event")
	}
}

func TestPaddleEdgeIsAMiss(t *testing.T) {
	sim := newTestSim(t)
	// Ball lands exactly on the paddle's left edge after moving.
	sim.ball.X, sim.ball.Y = 346, 585
	sim.ball.DX, sim.ball.DY = 4, 4

	sim.Tick()

	if sim.Phase() != PhaseLost {
		t.Errorf("phase = %s, want lost", sim.Phase())
	}
}

func TestCeilingTakesPriorityOverBottom(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Arena.Height = 20
	cfg.Paddle.Height = 2
	cfg.Paddle.BottomOffset = 1
	cfg.Ball.StartY = 10
	sim, err := NewSimulation(cfg)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	killAllBut(sim, -1)
	sim.ball.X, sim.ball.Y = 200, 10
	sim.ball.DX, sim.ball.DY = 4, -4
	sim.paddle.X = 600

	// Moves to y=6; next y 2 < radius fires, the bottom test is skipped.
	sim.Tick()

	if sim.Phase() != PhaseRunning {
		t.Errorf("phase = %s, want running", sim.Phase())
	}
}

func TestBrickHitDestroysAndScores(t *testing.T) {
	sim := newTestSim(t)
	// Brick (0,0) spans x 35..125, y 50..75.
	sim.ball.X, sim.ball.Y = 80, 60
	sim.ball.DX, sim.ball.DY = 4, -4

	res := sim.Tick()

	if sim.grid.At(0, 0).Alive {
		t.Error("brick (0,0) should be destroyed")
	}
	if sim.Score() != 10 {
		t.Errorf("score = %d, want 10", sim.Score())
	}
	if sim.Ball().DY != 4 {
		t.Errorf("DY = %v, want 4", sim.Ball().DY)
	}
	if len(res.Events) == 0 || res.Events[0].Kind != EventBrickBroken || res.Events[0].Brick != 0 {
		t.Errorf("unexpected events: %+v", res.Events)
	}
	if sim.Phase() != PhaseRunning {
		t.Errorf("phase = %s, want running", sim.Phase())
	}
}

func TestBrickEdgeIsNotAHit(t *testing.T) {
	sim := newTestSim(t)
	sim.ball.X, sim.ball.Y = 35, 60

	sim.Tick()

	if !sim.grid.At(0, 0).Alive {
		t.Error("ball on the brick edge must not break it")
	}
}

func TestLastBrickWinsOnSameTick(t *testing.T) {
	sim := newTestSim(t)
	killAllBut(sim, 0)
	sim.ball.X, sim.ball.Y = 80, 60
	sim.ball.DX, sim.ball.DY = 4, -4
	paddleX := sim.paddle.X

	res := sim.Tick()

	if res.Phase != PhaseWon || sim.Phase() != PhaseWon {
		t.Fatalf("phase = %s, want won", sim.Phase())
	}
	if !hasEvent(res, EventCleared) {
		t.Error("expected cleared event")
	}
	if sim.Score() != 10 {
		t.Errorf("score = %d, want 10", sim.Score())
	}
	// The tick stops after the bricks: the ball and paddle are not advanced.
	if b := sim.Ball(); b.X != 80 || b.Y != 60 {
		t.Errorf("ball moved to (%v,%v) on the winning tick", b.X, b.Y)
	}
	if sim.Paddle().X != paddleX {
		t.Error("paddle moved on the winning tick")
	}
}

func TestTerminalStateIsFrozen(t *testing.T) {
	sim := newTestSim(t)
	sim.ball.X, sim.ball.Y = 400, 585
	sim.ball.DX, sim.ball.DY = 4, 4
	sim.paddle.X = 0
	sim.Tick()
	if sim.Phase() != PhaseLost {
		t.Fatalf("setup: phase = %s", sim.Phase())
	}

	before := sim.Snapshot()
	sim.KeyDown("ArrowRight")
	sim.PointerMove(600)
	for range 10 {
		res := sim.Tick()
		if res.Phase != PhaseLost || len(res.Events) != 0 {
			t.Fatalf("terminal tick produced %+v", res)
		}
	}
	after := sim.Snapshot()

	if before.Hash() != after.Hash() {
		t.Error("state changed after reaching a terminal phase")
	}
}

func TestKeyMovementAndClamp(t *testing.T) {
	sim := newTestSim(t)
	killAllBut(sim, -1)
	// Keep the ball travelling sideways so the game cannot end.
	sim.ball.Y, sim.ball.DY = 300, 0

	sim.KeyDown("ArrowRight")
	sim.Tick()
	if sim.Paddle().X != 357 {
		t.Errorf("after one right tick paddle = %v, want 357", sim.Paddle().X)
	}

	for range 100 {
		sim.Tick()
		x := sim.Paddle().X
		if x < 0 || x > 700 {
			t.Fatalf("paddle out of bounds: %v", x)
		}
	}
	if sim.Paddle().X != 700 {
		t.Errorf("paddle = %v, want clamped to 700", sim.Paddle().X)
	}

	sim.KeyUp("ArrowRight")
	sim.KeyDown("Left")
	for range 200 {
		sim.Tick()
	}
	if sim.Paddle().X != 0 {
		t.Errorf("paddle = %v, want clamped to 0", sim.Paddle().X)
	}
}

func TestPointerMoveCentresPaddle(t *testing.T) {
	sim := newTestSim(t)

	sim.PointerMove(200)
	if sim.Paddle().X != 150 {
		t.Errorf("paddle = %v, want 150", sim.Paddle().X)
	}

	// Near the edges the paddle is clamped.
	sim.PointerMove(20)
	if sim.Paddle().X != 0 {
		t.Errorf("paddle = %v, want 0", sim.Paddle().X)
	}

	// Outside the arena the pointer is ignored.
	sim.PointerMove(-50)
	sim.PointerMove(850)
	if sim.Paddle().X != 0 {
		t.Errorf("paddle = %v, want unchanged 0", sim.Paddle().X)
	}
}

func TestPointerEventUsesSurfaceOffset(t *testing.T) {
	tests := []struct {
		name          string
		clientX, left float64
		want          float64
	}{
		{"inside", 300, 100, 150},
		{"clamped left", 120, 100, 0},
		{"clamped right", 880, 100, 700},
		{"left of surface", 50, 100, 350},
		{"right of surface", 950, 100, 350},
		{"on the left edge", 100, 100, 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSim(t)
			sim.HandleInput(core.PointerMove(tt.clientX, tt.left))
			if got := sim.Paddle().X; got != tt.want {
				t.Errorf("paddle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleInputRoutesEvents(t *testing.T) {
	sim := newTestSim(t)

	sim.HandleInput(core.KeyDown("Right"))
	if _, right := sim.tracker.Held(); !right {
		t.Error("right should be held")
	}
	sim.HandleInput(core.KeyUp("Right"))
	if _, right := sim.tracker.Held(); right {
		t.Error("right should be released")
	}
	sim.HandleInput(core.PointerMove(500, 0))
	if sim.Paddle().X != 450 {
		t.Errorf("paddle = %v, want 450", sim.Paddle().X)
	}
	sim.HandleInput(core.KeyDown("Space"))
	if l, r := sim.tracker.Held(); l || r {
		t.Error("unrecognised key changed held flags")
	}
}

// TestInvariantsHold drives the paddle under the ball and checks the
// per-tick invariants over a long run.
func TestInvariantsHold(t *testing.T) {
	sim := newTestSim(t)
	prevAlive := sim.BricksAlive()

	for i := 0; i < 20000 && sim.Running(); i++ {
		sim.PointerMove(sim.Ball().X)
		sim.Tick()

		alive := sim.BricksAlive()
		if alive > prevAlive {
			t.Fatalf("tick %d: bricks revived (%d > %d)", i, alive, prevAlive)
		}
		prevAlive = alive

		if want := 10 * (40 - alive); sim.Score() != want {
			t.Fatalf("tick %d: score = %d, want %d", i, sim.Score(), want)
		}
		if x := sim.Paddle().X; x < 0 || x > 700 {
			t.Fatalf("tick %d: paddle out of bounds: %v", i, x)
		}
		b := sim.Ball()
		if (b.DX != 4 && b.DX != -4) || (b.DY != 4 && b.DY != -4) {
			t.Fatalf("tick %d: speed changed: (%v,%v)", i, b.DX, b.DY)
		}
	}

	if sim.Phase() == PhaseLost {
		t.Errorf("paddle following the ball should never miss")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	sim := newTestSim(t)
	fresh := sim.Snapshot()

	sim.KeyDown("Left")
	sim.ball.X, sim.ball.Y = 80, 60
	for range 50 {
		sim.Tick()
	}
	if sim.Snapshot().Hash() == fresh.Hash() {
		t.Fatal("setup: state did not change")
	}

	sim.Reset()

	got := sim.Snapshot()
	if got.Hash() != fresh.Hash() {
		t.Error("Reset did not restore the initial state")
	}
	if sim.Score() != 0 || sim.BricksAlive() != 40 || sim.Phase() != PhaseRunning {
		t.Errorf("after Reset: score=%d alive=%d phase=%s", sim.Score(), sim.BricksAlive(), sim.Phase())
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		sim := newTestSim(t)
		for i := range 3000 {
			switch {
			case i%90 == 0:
				sim.KeyDown("ArrowLeft")
			case i%90 == 30:
				sim.KeyUp("ArrowLeft")
				sim.KeyDown("ArrowRight")
			case i%90 == 60:
				sim.KeyUp("ArrowRight")
				sim.PointerMove(sim.Ball().X)
			}
			sim.Tick()
		}
		return sim.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("runs diverged: %d != %d", a.Hash(), b.Hash())
	}
}

type drawCall struct {
	kind string
	text string
}

type recordingSurface struct {
	calls []drawCall
}

func (r *recordingSurface) Clear() { r.calls = append(r.calls, drawCall{kind: "clear"}) }
func (r *recordingSurface) FillCircle(_, _, _ float64, _ core.Color) {
	r.calls = append(r.calls, drawCall{kind: "circle"})
}
func (r *recordingSurface) FillRect(_, _, _, _ float64, _ core.Color) {
	r.calls = append(r.calls, drawCall{kind: "rect"})
}
func (r *recordingSurface) Text(_, _ float64, text string, _ core.Color) {
	r.calls = append(r.calls, drawCall{kind: "text", text: text})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func TestDraw(t *testing.T) {
	sim := newTestSim(t)
	surf := &recordingSurface{}

	sim.Draw(surf)

	if surf.calls[0].kind != "clear" {
		t.Error("Draw should clear first")
	}
	if got := surf.count("rect"); got != 41 {
		t.Errorf("rects = %d, want 41 (40 bricks + paddle)", got)
	}
	if got := surf.count("circle"); got != 1 {
		t.Errorf("circles = %d, want 1", got)
	}
	last := surf.calls[len(surf.calls)-1]
	if last.kind != "text" || last.text != "Score: 0" {
		t.Errorf("last call = %+v, want score text", last)
	}

	sim.grid.Bricks[3].Alive = false
	surf.calls = nil
	sim.Draw(surf)
	if got := surf.count("rect"); got != 40 {
		t.Errorf("rects = %d, want 40 after one brick destroyed", got)
	}
}
