// Package tui hosts blockfall games in a terminal with Bubble Tea, either
// locally or per SSH session. It owns key mapping, the frame clock, colors
// and the menu and scoreboard screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the running game by one frame.
type TickMsg time.Time

// tickCmd schedules the next frame at fps frames per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
