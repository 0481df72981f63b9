// Package tui provides the Bubble Tea integration for chicken invaders.
// It handles the terminal UI loop, input mapping, menus, the scoreboard
// and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// frameInterval is the nominal time between ticks. Non-positive rates fall
// back to the default tick rate.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// elapsedSince returns the real time between two ticks. The first tick has
// no predecessor and counts as one frame; a clock that runs backwards
// counts as zero.
func elapsedSince(last, now time.Time, tickRate int) time.Duration {
	if last.IsZero() {
		return frameInterval(tickRate)
	}
	return max(now.Sub(last), 0)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
