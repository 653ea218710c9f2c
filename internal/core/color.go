package core

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB colour shared by every drawing surface.
type Color struct {
	R, G, B uint8
}

// Predefined colours for HUD and overlays.
var (
	ColorDefault = Color{}
	ColorWhite   = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	ColorRed     = Color{R: 0xEF, G: 0x44, B: 0x44}
	ColorGreen   = Color{R: 0x22, G: 0xC5, B: 0x5E}
	ColorGray    = Color{R: 0x8A, G: 0x8A, B: 0x8A}
)

// ParseColor parses a "#RRGGBB" hex string.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for package-level constants.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsDefault reports whether c is the zero colour, meaning "terminal default".
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
