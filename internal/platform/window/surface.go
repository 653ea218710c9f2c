package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// debugGlyphHeight is the height of ebitenutil's debug font.
const debugGlyphHeight = 16

var background = color.RGBA{A: 0xFF}

// ImageSurface draws onto the ebiten image handed to Draw.
// Drawing is a no-op until a target is set.
type ImageSurface struct {
	target *ebiten.Image
}

// SetTarget points the surface at this frame's screen image.
func (s *ImageSurface) SetTarget(img *ebiten.Image) {
	s.target = img
}

func (s *ImageSurface) Clear() {
	if s.target == nil {
		return
	}
	s.target.Fill(background)
}

func (s *ImageSurface) FillCircle(cx, cy, r float64, c core.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), rgba(c), true)
}

func (s *ImageSurface) FillRect(x, y, w, h float64, c core.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledRect(s.target, float32(x), float32(y), float32(w), float32(h), rgba(c), false)
}

// Text draws with the debug font. y is the baseline, as on a canvas.
func (s *ImageSurface) Text(x, y float64, text string, _ core.Color) {
	if s.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(s.target, text, int(x), int(y)-debugGlyphHeight+4)
}

func rgba(c core.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
