package breakout

import "github.com/vovakirdan/brick-arcade/internal/core"

// Key is a direction key recognised by the Tracker.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
)

// ParseKey maps a host key identifier to a direction key.
// Unrecognised identifiers map to KeyUnknown.
func ParseKey(id string) Key {
	switch id {
	case "Left", "ArrowLeft":
		return KeyLeft
	case "Right", "ArrowRight":
		return KeyRight
	default:
		return KeyUnknown
	}
}

// Tracker turns key and pointer events into a paddle position.
type Tracker struct {
	leftHeld  bool
	rightHeld bool

	arenaW float64
	width  float64
	speed  float64
}

// NewTracker creates a tracker for a paddle of the given width and speed.
func NewTracker(arenaW, paddleW, speed float64) Tracker {
	return Tracker{arenaW: arenaW, width: paddleW, speed: speed}
}

// Press marks a direction key as held. Returns false for unrecognised keys.
func (t *Tracker) Press(id string) bool {
	return t.set(id, true)
}

// Release clears a held direction key. Returns false for unrecognised keys.
func (t *Tracker) Release(id string) bool {
	return t.set(id, false)
}

func (t *Tracker) set(id string, held bool) bool {
	switch ParseKey(id) {
	case KeyLeft:
		t.leftHeld = held
	case KeyRight:
		t.rightHeld = held
	default:
		return false
	}
	return true
}

// Held reports the current key flags.
func (t *Tracker) Held() (left, right bool) {
	return t.leftHeld, t.rightHeld
}

// PointerTarget converts an arena-local pointer x into a paddle left edge.
// Pointers on or outside the arena's horizontal bounds are ignored.
func (t *Tracker) PointerTarget(localX float64) (float64, bool) {
	if localX <= 0 || localX >= t.arenaW {
		return 0, false
	}
	return t.Clamp(localX - t.width/2), true
}

// Resolve applies one tick of key-driven movement to the paddle's left edge.
// Right wins over left when both are held.
func (t *Tracker) Resolve(x float64) float64 {
	switch {
	case t.rightHeld && x < t.arenaW-t.width:
		x += t.speed
	case t.leftHeld && x > 0:
		x -= t.speed
	}
	return t.Clamp(x)
}

// Clamp keeps the paddle's full width inside the arena.
func (t *Tracker) Clamp(x float64) float64 {
	return core.ClampF(x, 0, t.arenaW-t.width)
}

// Reset releases both keys.
func (t *Tracker) Reset() {
	t.leftHeld = false
	t.rightHeld = false
}
