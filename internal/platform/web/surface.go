package web

import "github.com/vovakirdan/brick-arcade/internal/core"

// FrameSurface records drawing primitives so they can be shipped to a
// browser canvas.
type FrameSurface struct {
	ops []DrawOp
}

// NewFrameSurface creates an empty surface.
func NewFrameSurface() *FrameSurface {
	return &FrameSurface{}
}

// Clear drops recorded primitives and starts a new frame.
func (f *FrameSurface) Clear() {
	f.ops = append(f.ops[:0], DrawOp{Op: "clear"})
}

func (f *FrameSurface) FillCircle(cx, cy, r float64, c core.Color) {
	f.ops = append(f.ops, DrawOp{Op: "circle", X: cx, Y: cy, R: r, Color: c.Hex()})
}

func (f *FrameSurface) FillRect(x, y, w, h float64, c core.Color) {
	f.ops = append(f.ops, DrawOp{Op: "rect", X: x, Y: y, W: w, H: h, Color: c.Hex()})
}

func (f *FrameSurface) Text(x, y float64, text string, c core.Color) {
	f.ops = append(f.ops, DrawOp{Op: "text", X: x, Y: y, Text: text, Color: c.Hex()})
}

// Ops returns a copy of the current frame's primitives.
func (f *FrameSurface) Ops() []DrawOp {
	out := make([]DrawOp, len(f.ops))
	copy(out, f.ops)
	return out
}
