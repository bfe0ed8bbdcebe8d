// Package tui is the terminal host of the shooter: a Bubble Tea model
// that feeds key input to the simulation and draws its snapshots, the
// scoreboard screen and the SSH server that serves both.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick at fps frames per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
