// Package breakout implements a single-ball brick breaker simulation and its
// fixed-step scheduler.
package breakout

import (
	"github.com/vovakirdan/brick-arcade/internal/config"
	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Brick is a single brick in the grid.
type Brick struct {
	Col, Row int
	Box      core.Box
	Color    core.Color
	Alive    bool
}

// Layout holds the brick grid constants with the palette already parsed.
type Layout struct {
	Rows, Columns int
	Width, Height float64
	Padding       float64
	OffsetTop     float64
	OffsetLeft    float64
	Palette       []core.Color
}

// LayoutFromConfig parses the palette and copies the grid constants.
func LayoutFromConfig(cfg config.BricksConfig) (Layout, error) {
	palette := make([]core.Color, len(cfg.Palette))
	for i, hex := range cfg.Palette {
		c, err := core.ParseColor(hex)
		if err != nil {
			return Layout{}, err
		}
		palette[i] = c
	}

	return Layout{
		Rows:       cfg.Rows,
		Columns:    cfg.Columns,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Padding:    cfg.Padding,
		OffsetTop:  cfg.OffsetTop,
		OffsetLeft: cfg.OffsetLeft,
		Palette:    palette,
	}, nil
}

// Grid is the brick field. Bricks are stored in scan order: column-major,
// so index = col*Rows + row.
type Grid struct {
	Rows, Columns int
	Bricks        []Brick
}

// NewGrid builds the initial brick layout. Every brick starts alive.
func NewGrid(l Layout) Grid {
	g := Grid{
		Rows:    l.Rows,
		Columns: l.Columns,
		Bricks:  make([]Brick, 0, l.Rows*l.Columns),
	}

	for col := range l.Columns {
		for row := range l.Rows {
			var color core.Color
			if len(l.Palette) > 0 {
				color = l.Palette[row%len(l.Palette)]
			}
			g.Bricks = append(g.Bricks, Brick{
				Col: col,
				Row: row,
				Box: core.Box{
					X: float64(col)*(l.Width+l.Padding) + l.OffsetLeft,
					Y: float64(row)*(l.Height+l.Padding) + l.OffsetTop,
					W: l.Width,
					H: l.Height,
				},
				Color: color,
				Alive: true,
			})
		}
	}
	return g
}

// At returns the brick at (col, row), or nil when out of range.
func (g *Grid) At(col, row int) *Brick {
	if col < 0 || col >= g.Columns || row < 0 || row >= g.Rows {
		return nil
	}
	return &g.Bricks[g.index(col, row)]
}

func (g *Grid) index(col, row int) int {
	return col*g.Rows + row
}

// CountAlive returns the number of bricks not yet destroyed.
func (g *Grid) CountAlive() int {
	count := 0
	for _, b := range g.Bricks {
		if b.Alive {
			count++
		}
	}
	return count
}

// Clone creates a deep copy of the grid.
func (g Grid) Clone() Grid {
	clone := g
	clone.Bricks = make([]Brick, len(g.Bricks))
	copy(clone.Bricks, g.Bricks)
	return clone
}
