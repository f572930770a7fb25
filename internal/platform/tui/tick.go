// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, rendering and SSH serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers a game tick. Gen ties it to the schedule that produced
// it; ticks from an older schedule are ignored.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after d.
func tickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
