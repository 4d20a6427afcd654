package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryStatus:
		return g.generateStatusSuggestions(affectedPath)
	case CategoryConnection:
		return g.generateConnectionSuggestions()
	case CategoryWalk:
		return g.generateWalkSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions() []string {
	return []string{
		"Check that the SFTP server is reachable and still running",
		"Verify your SSH agent or key in ~/.ssh is available",
		"Run the walk again; entries already listed are not affected",
	}
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "The entry may have been removed while the walk was running")
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you have read and execute permission on the directories being walked",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -ld %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -ld' on the affected path")
	}

	suggestions = append(suggestions, "Prune the directory with --prune to skip it, or run as a user who can read it")

	return suggestions
}

func (g *suggestionGenerator) generateStatusSuggestions(path string) []string {
	suggestions := []string{
		"The entry was listed but its attributes could not be read",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect the entry with 'stat %s'", path))
	}

	return append(suggestions, "Walk without --attributes if only names are needed")
}

func (g *suggestionGenerator) generateWalkSuggestions(path string) []string {
	suggestions := []string{
		"Try the walk again; this may be a transient I/O error",
		"Check system logs for filesystem or hardware issues",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify file and directory permissions",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
