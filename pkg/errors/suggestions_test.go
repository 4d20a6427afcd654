package errors_test

import (
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/joe/treewalk/pkg/errors"
)

func TestSuggestionGenerator_EveryCategoryHasSuggestions(t *testing.T) {
	t.Parallel()

	categories := []pkgerrors.ErrorCategory{
		pkgerrors.CategoryConnection,
		pkgerrors.CategoryPath,
		pkgerrors.CategoryPermission,
		pkgerrors.CategoryStatus,
		pkgerrors.CategoryUnknown,
		pkgerrors.CategoryWalk,
		pkgerrors.ErrorCategory("made-up"),
	}

	generator := pkgerrors.NewSuggestionGenerator()

	for _, category := range categories {
		t.Run(string(category), func(t *testing.T) {
			t.Parallel()

			if got := generator.Generate(category, ""); len(got) == 0 {
				t.Errorf("expected suggestions for %q", category)
			}
		})
	}
}

func TestSuggestionGenerator_PermissionNamesPath(t *testing.T) {
	t.Parallel()

	suggestions := pkgerrors.NewSuggestionGenerator().Generate(pkgerrors.CategoryPermission, "/srv/locked")

	joined := strings.Join(suggestions, "\n")
	if !strings.Contains(joined, "ls -ld /srv/locked") {
		t.Errorf("expected ls suggestion for the path, got %v", suggestions)
	}
}

func TestFormatSuggestions(t *testing.T) {
	t.Parallel()

	actionable := pkgerrors.NewActionableError("x", pkgerrors.CategoryWalk, []string{"one", "two"}, "")

	if got := pkgerrors.FormatSuggestions(actionable); got != "  • one\n  • two" {
		t.Errorf("unexpected format: %q", got)
	}

	if got := pkgerrors.FormatSuggestions(nil); got != "" {
		t.Errorf("expected empty for nil, got %q", got)
	}

	if got := pkgerrors.FormatSuggestions(errors.New("plain")); got != "" {
		t.Errorf("expected empty for plain error, got %q", got)
	}

	empty := pkgerrors.NewActionableError("x", pkgerrors.CategoryWalk, nil, "")
	if got := pkgerrors.FormatSuggestions(empty); got != "" {
		t.Errorf("expected empty for no suggestions, got %q", got)
	}
}
