package widgets

import "github.com/joe/treewalk/internal/tui/shared"

// NewPhaseWidget creates a widget that displays the current phase message.
// Returns a closure that returns the appropriate message for the given phase.
func NewPhaseWidget(phase string) func() string {
	return func() string {
		switch phase {
		case shared.StateWalking:
			return "Walking..."
		case shared.StatePaused:
			return "Paused"
		case shared.StateComplete:
			return "Walk complete"
		case shared.StateCancelled:
			return "Walk cancelled"
		case shared.StateError:
			return "Walk failed"
		default:
			return ""
		}
	}
}
