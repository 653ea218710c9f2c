package core

// Action represents a semantic host action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - move paddle left
	ActionRight          // Right arrow, D - move paddle right
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back
	ActionRestart        // R - restart after the game ended
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause the scheduler
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// EventKind distinguishes raw input events delivered by a host.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventPointerMove
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventPointerMove:
		return "pointermove"
	default:
		return "unknown"
	}
}

// InputEvent is a single raw input event.
//
// Key carries the host's key identifier ("ArrowLeft", "Right", ...) for key
// events. For pointer events X is the absolute client coordinate and Offset the
// client X of the drawing surface's left edge; X-Offset is arena-local.
type InputEvent struct {
	Kind   EventKind
	Key    string
	X      float64
	Offset float64
}

// KeyDown builds a key press event.
func KeyDown(key string) InputEvent {
	return InputEvent{Kind: EventKeyDown, Key: key}
}

// KeyUp builds a key release event.
func KeyUp(key string) InputEvent {
	return InputEvent{Kind: EventKeyUp, Key: key}
}

// PointerMove builds a pointer motion event.
func PointerMove(clientX, surfaceLeft float64) InputEvent {
	return InputEvent{Kind: EventPointerMove, X: clientX, Offset: surfaceLeft}
}

// LocalX returns the pointer coordinate translated into surface space.
func (e InputEvent) LocalX() float64 {
	return e.X - e.Offset
}

// InputFrame collects the input events that arrived between two host frames.
// Events are applied in arrival order before the frame's ticks run.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Events: make([]InputEvent, 0, 8)}
}

// Add appends an event to the frame.
func (f *InputFrame) Add(ev InputEvent) {
	f.Events = append(f.Events, ev)
}

// Len returns the number of buffered events.
func (f InputFrame) Len() int {
	return len(f.Events)
}

// Clear drops all buffered events for the next frame.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}
