package shared

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/treewalk/internal/walkengine"
)

// eventBufferSize bounds the events queued between two UI updates.
const eventBufferSize = 256

// EventBridge adapts walkengine events to bubble tea messages.
// It implements walkengine.EventEmitter and provides a channel for TUI consumption.
// EntryVisited is not forwarded: the model receives entries straight from
// Engine.Step.
type EventBridge struct {
	eventChan chan tea.Msg
	closed    bool
	dropped   int
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, eventBufferSize),
	}
}

// Emit implements walkengine.EventEmitter.
func (b *EventBridge) Emit(event walkengine.Event) {
	if b.closed {
		return
	}

	if _, ok := event.(walkengine.EntryVisited); ok {
		return
	}

	// Never block the engine; a full buffer drops the event.
	select {
	case b.eventChan <- EngineEventMsg{Event: event}:
	default:
		b.dropped++
	}
}

// Dropped returns how many events did not fit in the buffer.
func (b *EventBridge) Dropped() int {
	return b.dropped
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel.
func (b *EventBridge) Close() {
	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
