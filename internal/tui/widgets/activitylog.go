package widgets

import "github.com/joe/treewalk/internal/tui/shared"

const maxActivityEntries = 10

// NewActivityLogWidget creates a widget that displays recent walk activity:
// prunes and failures. Returns a closure that renders the most recent entries.
func NewActivityLogWidget(getActivities func() []string) func() string {
	return func() string {
		activities := getActivities()
		if len(activities) == 0 {
			return ""
		}

		return shared.RenderActivityLog("Activity", activities, maxActivityEntries)
	}
}
