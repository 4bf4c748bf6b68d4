// Package tui provides the Bubble Tea integration for Water Sort.
// It handles the terminal UI loop, input mapping, the level picker,
// the scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the game model that requested it, so ticks from a game
// that has been left are dropped.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// tickCmd returns a Bubble Tea command that sends a tick message at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
