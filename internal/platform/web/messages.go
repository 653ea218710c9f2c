package web

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/brick-arcade/internal/core"
)

// Client message types.
const (
	MsgKeyDown     = "keydown"
	MsgKeyUp       = "keyup"
	MsgPointerMove = "pointermove"
	MsgRestart     = "restart"
	MsgPause       = "pause"
)

// Server message types.
const (
	MsgHello = "hello"
	MsgFrame = "frame"
)

// ClientMessage is an inbound websocket text message.
// Examples: {"type":"keydown","key":"ArrowLeft"},
// {"type":"pointermove","clientX":512,"left":112}, {"type":"restart"}.
type ClientMessage struct {
	Type    string  `json:"type"`
	Key     string  `json:"key,omitempty"`
	ClientX float64 `json:"clientX,omitempty"`
	Left    float64 `json:"left,omitempty"`
}

// DecodeClientMessage parses and normalises an inbound message.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("web: bad message: %w", err)
	}
	msg.Type = strings.ToLower(msg.Type)
	switch msg.Type {
	case MsgKeyDown, MsgKeyUp, MsgPointerMove, MsgRestart, MsgPause:
		return msg, nil
	default:
		return ClientMessage{}, fmt.Errorf("web: unknown message type %q", msg.Type)
	}
}

// InputEvent converts an input message to a simulation event.
// Control messages report false.
func (m ClientMessage) InputEvent() (core.InputEvent, bool) {
	switch m.Type {
	case MsgKeyDown:
		return core.KeyDown(m.Key), true
	case MsgKeyUp:
		return core.KeyUp(m.Key), true
	case MsgPointerMove:
		return core.PointerMove(m.ClientX, m.Left), true
	default:
		return core.InputEvent{}, false
	}
}

// HelloMessage tells the client the arena size.
type HelloMessage struct {
	Type   string  `json:"type"`
	Game   string  `json:"game"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FrameMessage carries one rendered frame and the game status.
type FrameMessage struct {
	Type   string   `json:"type"`
	Tick   uint64   `json:"tick"`
	Phase  string   `json:"phase"`
	Score  int      `json:"score"`
	Paused bool     `json:"paused"`
	Ops    []DrawOp `json:"ops"`
}

// DrawOp is one drawing primitive replayed on the client canvas.
type DrawOp struct {
	Op    string  `json:"op"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	Color string  `json:"color,omitempty"`
	Text  string  `json:"text,omitempty"`
}
