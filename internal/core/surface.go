package core

// Surface is a 2D drawing target sized in arena units.
// Games call its primitives once per frame; no results are consumed.
type Surface interface {
	Clear()
	FillCircle(cx, cy, r float64, c Color)
	FillRect(x, y, w, h float64, c Color)
	Text(x, y float64, text string, c Color)
}

// Glyphs used when projecting an arena onto terminal cells.
const (
	RectGlyph   = '█'
	CircleGlyph = '●'
)

// ScreenSurface projects an arena of arenaW×arenaH units onto a terminal Screen.
// Every primitive covers at least one cell so small shapes stay visible.
type ScreenSurface struct {
	screen *Screen
	arenaW float64
	arenaH float64
}

// NewScreenSurface wraps a Screen.
func NewScreenSurface(s *Screen, arenaW, arenaH float64) *ScreenSurface {
	return &ScreenSurface{screen: s, arenaW: arenaW, arenaH: arenaH}
}

// Screen returns the wrapped screen buffer.
func (ss *ScreenSurface) Screen() *Screen {
	return ss.screen
}

// SetScreen retargets the surface at another screen buffer.
func (ss *ScreenSurface) SetScreen(s *Screen) {
	ss.screen = s
}

// CellX converts an arena x-coordinate to a column.
func (ss *ScreenSurface) CellX(x float64) int {
	if ss.arenaW <= 0 {
		return 0
	}
	return int(x * float64(ss.screen.Width()) / ss.arenaW)
}

// CellY converts an arena y-coordinate to a row.
func (ss *ScreenSurface) CellY(y float64) int {
	if ss.arenaH <= 0 {
		return 0
	}
	return int(y * float64(ss.screen.Height()) / ss.arenaH)
}

// ArenaX converts a column back to the arena x-coordinate of the cell centre.
func (ss *ScreenSurface) ArenaX(col int) float64 {
	w := ss.screen.Width()
	if w <= 0 {
		return 0
	}
	return (float64(col) + 0.5) * ss.arenaW / float64(w)
}

// Clear blanks the underlying screen.
func (ss *ScreenSurface) Clear() {
	ss.screen.Clear()
}

// FillCircle draws a single glyph at the circle's centre cell.
func (ss *ScreenSurface) FillCircle(cx, cy, _ float64, c Color) {
	ss.screen.SetColored(ss.CellX(cx), ss.CellY(cy), CircleGlyph, c)
}

// FillRect fills every cell the rectangle covers.
func (ss *ScreenSurface) FillRect(x, y, w, h float64, c Color) {
	x0, y0 := ss.CellX(x), ss.CellY(y)
	x1, y1 := ss.CellX(x+w), ss.CellY(y+h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	ss.screen.FillRect(NewRect(x0, y0, x1-x0, y1-y0), RectGlyph, c)
}

// Text writes text starting at the cell containing (x, y).
func (ss *ScreenSurface) Text(x, y float64, text string, c Color) {
	ss.screen.DrawTextColored(ss.CellX(x), ss.CellY(y), text, c)
}
