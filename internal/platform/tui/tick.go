// Package tui hosts games in the terminal with Bubble Tea: the frame loop,
// key and mouse mapping, menus, the replay browser and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameRate caps terminal redraws. The game's scheduler turns real time
// into logical ticks, so frames only decide how often input is sampled and
// the screen repainted.
const maxFrameRate = 60

// FrameMsg is sent once per terminal frame.
type FrameMsg time.Time

// frameCmd schedules the next frame for the given tick rate.
func frameCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 || tickRate > maxFrameRate {
		tickRate = maxFrameRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
