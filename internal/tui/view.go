package tui

import (
	"strings"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/tui/widgets"
)

const helpText = "s prune • p pause • n step • q quit"

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("treewalk " + m.engine.Root))
	builder.WriteString("\n")

	phase := widgets.NewPhaseWidget(m.state)()

	switch m.state {
	case shared.StateWalking:
		phase = m.spinner.View() + " " + phase
	case shared.StateComplete:
		phase = shared.RenderSuccess(phase)
	case shared.StateCancelled, shared.StatePaused:
		phase = shared.RenderWarning(phase)
	case shared.StateError:
		phase = shared.RenderError(phase)
	}

	builder.WriteString(phase)
	builder.WriteString("\n\n")

	builder.WriteString(widgets.NewEntryListWidget(m.Entries, m.width)())

	if log := widgets.NewActivityLogWidget(m.Activities)(); log != "" {
		builder.WriteString("\n")
		builder.WriteString(log)
		builder.WriteString("\n")
	}

	context := shared.ContextInProgress
	if m.finished() {
		context = shared.ContextComplete
	}

	if errs := shared.RenderErrorList(shared.ErrorListConfig{
		Errors:      m.failures,
		Context:     context,
		MaxWidth:    m.width,
		Suggestions: m.finished(),
	}); errs != "" {
		builder.WriteString("\n")
		builder.WriteString(shared.RenderLabel("Errors"))
		builder.WriteString("\n")
		builder.WriteString(errs)
	}

	builder.WriteString("\n")
	builder.WriteString(shared.RenderBox(widgets.NewSummaryWidget(m.Stats, m.err)()))
	builder.WriteString("\n")

	help := helpText
	if m.finished() {
		help = "q quit"
	}

	builder.WriteString(shared.RenderDim(help))
	builder.WriteString("\n")

	return builder.String()
}
