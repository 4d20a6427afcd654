package shared

import "github.com/joe/treewalk/internal/walkengine"

// EngineEventMsg wraps a walkengine.Event for use as a tea.Msg.
type EngineEventMsg struct {
	Event walkengine.Event
}

// StepBatchMsg asks the model to pull the next batch of entries.
type StepBatchMsg struct{}
