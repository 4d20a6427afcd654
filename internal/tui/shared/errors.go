package shared

import (
	"fmt"
	"strings"

	"github.com/joe/treewalk/pkg/errors"
)

// Error display limits for different screen contexts
const (
	// ErrorLimitInProgress is for the live view while the walk runs
	ErrorLimitInProgress = 3

	// ErrorLimitComplete is for the final view after the walk ended
	ErrorLimitComplete = 10
)

// ErrorDisplayContext defines the context in which errors are being displayed
type ErrorDisplayContext int

const (
	// ContextInProgress indicates errors shown while walking
	ContextInProgress ErrorDisplayContext = iota
	// ContextComplete indicates errors shown after the walk ended
	ContextComplete
)

// EntryError is one failed entry shown in an error list.
type EntryError struct {
	Path string
	Err  error
}

// ErrorListConfig holds configuration for rendering error lists
type ErrorListConfig struct {
	// Errors is the list of entry errors to display
	Errors []EntryError

	// Context determines the display limit and overflow message
	Context ErrorDisplayContext

	// MaxWidth is the maximum width for path and error message display
	MaxWidth int

	// Suggestions shows actionable suggestions under each error
	Suggestions bool
}

// RenderErrorList renders a list of errors with appropriate limits and formatting
// based on the display context. Returns the rendered error list as a string.
func RenderErrorList(config ErrorListConfig) string {
	if len(config.Errors) == 0 {
		return ""
	}

	var builder strings.Builder
	enricher := errors.NewEnricher()

	limit := getErrorLimit(config.Context)

	for i, entryErr := range config.Errors {
		if i >= limit {
			fmt.Fprintf(&builder, "%s\n", getOverflowMessage(config.Context, len(config.Errors)-limit))

			break
		}

		enrichedErr := enricher.Enrich(entryErr.Err, entryErr.Path)

		displayPath := entryErr.Path
		if config.MaxWidth > 0 {
			displayPath = TruncatePath(entryErr.Path, config.MaxWidth)
		}

		fmt.Fprintf(&builder, "  %s %s\n",
			ErrorSymbol(),
			FileItemErrorStyle().Render(displayPath))

		errMsg := enrichedErr.Error()
		if config.MaxWidth > 3 && len(errMsg) > config.MaxWidth {
			errMsg = errMsg[:config.MaxWidth-3] + "..."
		}

		fmt.Fprintf(&builder, "    %s\n", errMsg)

		if !config.Suggestions {
			continue
		}

		if suggestions := errors.FormatSuggestions(enrichedErr); suggestions != "" {
			fmt.Fprintf(&builder, "%s\n", "    "+strings.ReplaceAll(suggestions, "\n", "\n    "))
		}
	}

	return builder.String()
}

// getErrorLimit returns the error display limit for a given context
func getErrorLimit(context ErrorDisplayContext) int {
	switch context {
	case ContextInProgress:
		return ErrorLimitInProgress
	case ContextComplete:
		return ErrorLimitComplete
	default:
		return ErrorLimitComplete
	}
}

// getOverflowMessage returns the appropriate message when error limit is exceeded
func getOverflowMessage(context ErrorDisplayContext, remaining int) string {
	if context == ContextInProgress {
		return fmt.Sprintf("  ... and %d more (see summary)", remaining)
	}

	return fmt.Sprintf("... and %d more error(s)", remaining)
}
