package breakout

// Arena is the bounded play area in arena units.
type Arena struct {
	Width, Height float64
}

// Ball is the single ball in play.
type Ball struct {
	X, Y   float64
	DX, DY float64
	Radius float64
}

// Paddle is the player's paddle. X is the left edge; Y the top edge.
type Paddle struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the paddle's right edge.
func (p Paddle) Right() float64 {
	return p.X + p.Width
}

// Spans reports whether x lies strictly between the paddle's edges.
func (p Paddle) Spans(x float64) bool {
	return x > p.X && x < p.Right()
}

// WallHits describes what the physics step found at the ball's next position.
type WallHits struct {
	Side   bool // left or right wall, dx negated
	Top    bool // ceiling, dy negated
	Bottom bool // next position crosses the bottom line; the paddle decides
}

// StepBall advances the ball by its velocity and reflects it off the side
// walls and the ceiling. The tests look one step ahead of the moved ball.
// The bottom is only reported; it is tested only when the ceiling did not fire.
func StepBall(b *Ball, arena Arena) WallHits {
	b.X += b.DX
	b.Y += b.DY

	var hits WallHits
	nextX := b.X + b.DX
	if nextX > arena.Width-b.Radius || nextX < b.Radius {
		b.DX = -b.DX
		hits.Side = true
	}

	nextY := b.Y + b.DY
	switch {
	case nextY < b.Radius:
		b.DY = -b.DY
		hits.Top = true
	case nextY > arena.Height-b.Radius:
		hits.Bottom = true
	}
	return hits
}
