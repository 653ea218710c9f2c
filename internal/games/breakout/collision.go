package breakout

import "github.com/vovakirdan/brick-arcade/internal/config"

// BrickHits lists the bricks the ball centre is strictly inside, by grid index
// in scan order.
type BrickHits struct {
	Indices []int
}

// Count returns the number of bricks hit.
func (h BrickHits) Count() int {
	return len(h.Indices)
}

// ScanBricks tests the ball centre against every alive brick in column-major
// order. With the "first" policy the scan stops at the first hit.
// The grid is not modified.
func ScanBricks(g *Grid, x, y float64, policy string) BrickHits {
	var hits BrickHits
scan:
	for col := 0; col < g.Columns; col++ {
		for row := 0; row < g.Rows; row++ {
			b := g.At(col, row)
			if !b.Alive || !b.Box.ContainsStrict(x, y) {
				continue
			}
			hits.Indices = append(hits.Indices, g.index(col, row))
			if policy == config.HitPolicyFirst {
				break scan
			}
		}
	}
	return hits
}

// PaddleOutcome is the result of the bottom-edge check.
type PaddleOutcome int

const (
	PaddleNone PaddleOutcome = iota
	PaddleBounce
	PaddleMiss
)

func (o PaddleOutcome) String() string {
	switch o {
	case PaddleBounce:
		return "bounce"
	case PaddleMiss:
		return "miss"
	default:
		return "none"
	}
}

// ResolvePaddle decides what happens when the ball's next position crosses
// the bottom line. Contact is judged on the ball centre only.
func ResolvePaddle(walls WallHits, b Ball, p Paddle) PaddleOutcome {
	if !walls.Bottom {
		return PaddleNone
	}
	if p.Spans(b.X) {
		return PaddleBounce
	}
	return PaddleMiss
}
