package walkengine

import "github.com/google/uuid"

// Event is the interface implemented by all walk engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// Prune reasons reported by SubtreePruned.
const (
	ReasonPattern  = "pattern"
	ReasonMaxDepth = "max-depth"
	ReasonManual   = "manual"
)

// WalkStarted is emitted before the first entry is pulled.
type WalkStarted struct {
	WalkID uuid.UUID
	Root   string
}

func (WalkStarted) isEvent() {}

// EntryVisited is emitted for every entry that passes the include filter.
type EntryVisited struct {
	Entry Entry
}

func (EntryVisited) isEvent() {}

// EntryFailed is emitted for an entry that carries a partial failure.
// The walk goes on.
type EntryFailed struct {
	Path string
	Err  error
}

func (EntryFailed) isEvent() {}

// SubtreePruned is emitted when a directory's descendants are skipped.
type SubtreePruned struct {
	Path   string
	Reason string
}

func (SubtreePruned) isEvent() {}

// WalkComplete is emitted once, when the walk ends for any reason.
type WalkComplete struct {
	WalkID uuid.UUID
	Stats  Stats
	// Err is what ended the walk early (a fault, a cancellation or a callback
	// error), nil for a clean end.
	Err error
}

func (WalkComplete) isEvent() {}
