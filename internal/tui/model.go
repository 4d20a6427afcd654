// Package tui shows a walk as it happens: the latest entries, prunes,
// failures and running counters. The walk is pulled inside Update, a bounded
// batch per tick, so the engine is only ever touched by the program goroutine.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/walkengine"
)

const (
	// DefaultBatchSize is how many entries are pulled per tick.
	DefaultBatchSize = 64

	// maxRecentEntries bounds the entries kept for display.
	maxRecentEntries = 200
)

// Model represents the TUI state
type Model struct {
	engine *walkengine.Engine
	bridge *shared.EventBridge

	spinner   spinner.Model
	batchSize int

	entries    []walkengine.Entry
	activities []string
	failures   []shared.EntryError

	state    string
	err      error
	width    int
	height   int
	quitting bool
}

// NewModel creates a model that walks engine. The model installs its own
// event emitter on the engine.
func NewModel(engine *walkengine.Engine) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	bridge := shared.NewEventBridge()
	engine.SetEventEmitter(bridge)

	return Model{
		engine:    engine,
		bridge:    bridge,
		spinner:   s,
		batchSize: DefaultBatchSize,
		state:     shared.StateWalking,
	}
}

// WithBatchSize returns a copy of m that pulls n entries per tick.
func (m Model) WithBatchSize(n int) Model {
	if n > 0 {
		m.batchSize = n
	}

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		shared.TickCmd(),
		m.bridge.ListenCmd(),
	)
}

// State returns the current phase: walking, paused, complete, cancelled or error.
func (m Model) State() string {
	return m.state
}

// Entries returns the most recently visited entries, oldest first.
func (m Model) Entries() []walkengine.Entry {
	return m.entries
}

// Activities returns the prune and failure log.
func (m Model) Activities() []string {
	return m.activities
}

// Failures returns every entry that carried an error.
func (m Model) Failures() []shared.EntryError {
	return m.failures
}

// Err returns the fault that ended the walk, or nil.
func (m Model) Err() error {
	return m.err
}

// Stats returns the counters, with the elapsed time kept current while the
// walk runs.
func (m Model) Stats() walkengine.Stats {
	stats := m.engine.Stats()
	if !m.engine.Done() && !stats.StartTime.IsZero() {
		stats.Elapsed = m.engine.TimeProvider.Now().Sub(stats.StartTime)
	}

	return stats
}

func (m Model) finished() bool {
	switch m.state {
	case shared.StateComplete, shared.StateCancelled, shared.StateError:
		return true
	default:
		return false
	}
}
