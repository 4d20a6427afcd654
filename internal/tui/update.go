package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/walkengine"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case shared.TickMsg:
		if m.finished() {
			return m, nil
		}

		if m.state == shared.StateWalking {
			m = m.stepBatch()
		}

		if m.finished() {
			return m, nil
		}

		return m, shared.TickCmd()

	case shared.StepBatchMsg:
		if m.state == shared.StateWalking {
			m = m.stepBatch()
		}

		return m, nil

	case shared.EngineEventMsg:
		m = m.handleEvent(msg.Event)
		return m, m.bridge.ListenCmd()

	case spinner.TickMsg:
		if m.finished() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", shared.KeyCtrlC:
		if !m.finished() {
			m.state = shared.StateCancelled
		}

		m = m.shutdown()
		m.quitting = true

		return m, tea.Quit

	case "p", " ":
		switch m.state {
		case shared.StateWalking:
			m.state = shared.StatePaused
			return m, nil
		case shared.StatePaused:
			m.state = shared.StateWalking
			return m, shared.TickCmd()
		}

	case "s":
		if !m.finished() && !m.engine.Prune() {
			m.activities = append(m.activities, shared.RenderDim("nothing to prune"))
		}

	case "n":
		// Single step while paused.
		if m.state == shared.StatePaused {
			m = m.step(1)
		}
	}

	return m, nil
}

func (m Model) handleEvent(event walkengine.Event) Model {
	switch e := event.(type) {
	case walkengine.SubtreePruned:
		m.activities = append(m.activities, fmt.Sprintf("pruned %s (%s)", e.Path, e.Reason))
	case walkengine.EntryFailed:
		m.activities = append(m.activities, shared.FileItemErrorStyle().Render("failed "+e.Path))
	case walkengine.WalkComplete:
		if e.Err != nil {
			m.activities = append(m.activities, shared.RenderError("walk ended: "+e.Err.Error()))
		}
	}

	return m
}

func (m Model) stepBatch() Model {
	return m.step(m.batchSize)
}

// step pulls up to n entries and settles the state once the walk ends.
func (m Model) step(n int) Model {
	for range n {
		entry, ok := m.engine.Step()
		if !ok {
			break
		}

		m.entries = append(m.entries, entry)
		if entry.Err != nil {
			m.failures = append(m.failures, shared.EntryError{Path: entry.Path, Err: entry.Err})
		}
	}

	if over := len(m.entries) - maxRecentEntries; over > 0 {
		m.entries = append([]walkengine.Entry(nil), m.entries[over:]...)
	}

	if m.engine.Done() {
		m.err = m.engine.Err()

		m.state = shared.StateComplete
		if m.err != nil {
			m.state = shared.StateError
		}

		if err := m.engine.Close(); err != nil && m.err == nil {
			m.err = err
		}
	}

	return m
}

// shutdown releases the walk and stops listening for events.
func (m Model) shutdown() Model {
	if err := m.engine.Close(); err != nil && m.err == nil {
		m.err = err
	}

	m.bridge.Close()

	return m
}
