// Package tui provides the Bubble Tea integration for boxsim.
// It handles the terminal UI loop, input mapping and scene orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate is used when the runtime config leaves TickRate unset.
const defaultTickRate = 60

// TickMsg is sent to trigger a scene step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that fires one TickMsg after a
// frame interval at tickRate frames per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
