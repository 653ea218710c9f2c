package breakout

import "math"

// Snapshot is a flat copy of the simulation state.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Score   int
	BallX   float64
	BallY   float64
	BallDX  float64
	BallDY  float64
	PaddleX float64

	LeftHeld  bool
	RightHeld bool

	// Alive flags in scan order (column-major).
	Alive []bool
}

// Snapshot returns the current state as a Snapshot.
func (s *Simulation) Snapshot() Snapshot {
	alive := make([]bool, len(s.grid.Bricks))
	for i, b := range s.grid.Bricks {
		alive[i] = b.Alive
	}
	left, right := s.tracker.Held()

	return Snapshot{
		Tick:      s.tick,
		Phase:     s.phase,
		Score:     s.score,
		BallX:     s.ball.X,
		BallY:     s.ball.Y,
		BallDX:    s.ball.DX,
		BallDY:    s.ball.DY,
		PaddleX:   s.paddle.X,
		LeftHeld:  left,
		RightHeld: right,
		Alive:     alive,
	}
}

// Hash returns a simple hash of the snapshot for determinism checks.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallDX)
	h = h*31 + math.Float64bits(snap.BallDY)
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + boolBit(snap.LeftHeld)
	h = h*31 + boolBit(snap.RightHeld)
	for _, a := range snap.Alive {
		h = h*31 + boolBit(a)
	}
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
