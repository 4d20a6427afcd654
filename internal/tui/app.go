package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/util"
	"github.com/joe/treewalk/internal/walkengine"
)

// ErrCancelled reports that the user quit before the walk ended.
var ErrCancelled = errors.New("walk cancelled")

// Result is what an interactive walk ended with.
type Result struct {
	Stats    walkengine.Stats
	Failures []shared.EntryError
	Err      error
}

// Run shows the walk until the user quits. The engine is closed on return.
// The alternate screen is used only when stdout is a terminal.
func Run(engine *walkengine.Engine, opts ...tea.ProgramOption) (Result, error) {
	if util.IsTerminal(os.Stdout) {
		opts = append(opts, tea.WithAltScreen())
	}

	model := NewModel(engine)
	program := tea.NewProgram(model, opts...)

	final, err := program.Run()

	_ = engine.Close()

	if err != nil {
		return Result{}, fmt.Errorf("failed to run interactive view: %w", err)
	}

	return resultOf(final)
}

func resultOf(final tea.Model) (Result, error) {
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected final model %T", final) //nolint:err113 // Programming error with actual type
	}

	result := Result{
		Stats:    m.Stats(),
		Failures: m.Failures(),
		Err:      m.Err(),
	}

	if m.State() == shared.StateCancelled && result.Err == nil {
		result.Err = ErrCancelled
	}

	return result, nil
}
