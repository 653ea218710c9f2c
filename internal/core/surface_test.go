package core

import "testing"

func TestScreenSurfaceProjection(t *testing.T) {
	s := NewScreen(80, 24)
	ss := NewScreenSurface(s, 800, 600)

	if got := ss.CellX(400); got != 40 {
		t.Errorf("CellX(400) = %d, expected 40", got)
	}
	if got := ss.CellY(300); got != 12 {
		t.Errorf("CellY(300) = %d, expected 12", got)
	}
	if got := ss.ArenaX(40); got != 405 {
		t.Errorf("ArenaX(40) = %v, expected 405", got)
	}
}

func TestScreenSurfaceFillRect(t *testing.T) {
	s := NewScreen(80, 24)
	ss := NewScreenSurface(s, 800, 600)
	c := MustParseColor("#4ECDC4")

	// Brick at (35, 50) 90x25 covers columns 3..11 on row 2
	ss.FillRect(35, 50, 90, 25, c)

	for x := 3; x < 12; x++ {
		cell := s.GetCell(x, 2)
		if cell.Rune != RectGlyph || cell.Color != c {
			t.Errorf("expected brick cell at (%d, 2), got %+v", x, cell)
		}
	}
	if s.Get(12, 2) != ' ' {
		t.Error("FillRect should not spill past the right edge")
	}
}

func TestScreenSurfaceTinyShapesStayVisible(t *testing.T) {
	s := NewScreen(10, 10)
	ss := NewScreenSurface(s, 800, 600)

	ss.FillRect(0, 0, 1, 1, ColorWhite)
	if s.Get(0, 0) != RectGlyph {
		t.Error("a sub-cell rectangle should still cover one cell")
	}

	ss.FillCircle(400, 300, 8, ColorWhite)
	if s.Get(5, 5) != CircleGlyph {
		t.Errorf("circle glyph expected at (5, 5), got %q", s.Get(5, 5))
	}
}
