// Package errors turns walk failures into actionable errors with suggestions.
//
// A failure is categorized (permission, path, status, connection, walk) and
// paired with guidance the user can act on. Errors coming from
// pkg/filesystem are categorized by their sentinel kind; anything else falls
// back to matching well-known phrases in the message.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	for visit := range walker.All() {
//	    if visit.Err != nil {
//	        actionable := enricher.Enrich(visit.Err, visit.Path)
//	        fmt.Fprintln(os.Stderr, actionable)
//	        fmt.Fprintln(os.Stderr, errors.FormatSuggestions(actionable))
//	    }
//	}
//
// When no path is given the enricher takes it from a *filesystem.PathError in
// the chain, or failing that from the message itself:
//
//	err := errors.New("open /home/user/file.txt: permission denied")
//	enriched := enricher.Enrich(err, "") // path is /home/user/file.txt
package errors

import "strings"

// Exported constants.
const (
	CategoryConnection ErrorCategory = "connection"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryStatus     ErrorCategory = "status"
	CategoryUnknown    ErrorCategory = "unknown"
	CategoryWalk       ErrorCategory = "walk"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list.
// Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError) //nolint:errorlint // Only a top-level ActionableError carries suggestions
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
	cause         error
}

// AffectedPath returns the file path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the enriched error, so errors.Is still sees its kind.
func (e *actionableError) Unwrap() error {
	return e.cause
}
