package shared

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg paces the walk view: each tick pulls the next batch of entries and
// refreshes the elapsed time.
type TickMsg time.Time

// TickCmd schedules the next TickMsg after TickIntervalMs.
func TickCmd() tea.Cmd {
	return tea.Tick(TickIntervalMs*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
