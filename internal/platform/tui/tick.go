package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PollMsg is sent to trigger one host-loop iteration.
type PollMsg time.Time

// pollCmd returns a Bubble Tea command that sends a poll message after interval.
// The host loop samples its own clock, so late delivery only delays the poll.
func pollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollMsg(t)
	})
}
