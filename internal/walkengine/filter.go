package walkengine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// EntryFilter decides which visited entries are reported.
type EntryFilter interface {
	// ShouldInclude returns true if the entry at the given relative path should be reported
	ShouldInclude(relativePath string) bool
}

// GlobFilter implements EntryFilter using glob patterns
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
	// nameOnly patterns have no separator and are matched against the base name too.
	nameOnly bool
}

// NewGlobFilter creates a new GlobFilter with the given pattern
// Empty pattern matches all entries
func NewGlobFilter(pattern string) *GlobFilter {
	normalized := strings.ToLower(pattern)

	return &GlobFilter{
		normalizedPattern: normalized,
		isEmpty:           pattern == "",
		nameOnly:          !strings.Contains(pattern, "/"),
	}
}

// ShouldInclude returns true if the entry should be included based on the glob pattern.
// Matching is case-insensitive. A pattern without "/" such as "*.go" also
// matches entries at any depth by their base name.
func (f *GlobFilter) ShouldInclude(relativePath string) bool {
	if f.isEmpty {
		return true
	}

	normalizedPath := strings.ToLower(relativePath)

	if match(f.normalizedPattern, normalizedPath) {
		return true
	}

	if f.nameOnly {
		return match(f.normalizedPattern, baseName(normalizedPath))
	}

	return false
}

// PruneMatcher selects directories whose descendants are skipped.
type PruneMatcher struct {
	patterns []string
}

// NewPruneMatcher compiles a set of prune globs. Patterns are matched
// case-sensitively against the relative path and, for patterns without "/",
// against the directory name.
func NewPruneMatcher(patterns []string) *PruneMatcher {
	return &PruneMatcher{patterns: patterns}
}

// Matches reports whether the directory at relativePath should be pruned.
func (m *PruneMatcher) Matches(relativePath string) bool {
	for _, pattern := range m.patterns {
		if match(pattern, relativePath) {
			return true
		}

		if !strings.Contains(pattern, "/") && match(pattern, baseName(relativePath)) {
			return true
		}
	}

	return false
}

// ValidatePatterns reports the first pattern doublestar cannot parse.
func ValidatePatterns(patterns ...string) (string, bool) {
	for _, pattern := range patterns {
		if pattern != "" && !doublestar.ValidatePattern(pattern) {
			return pattern, false
		}
	}

	return "", true
}

func match(pattern, path string) bool {
	matched, err := doublestar.Match(pattern, path)
	if err != nil {
		// Invalid patterns never match.
		return false
	}

	return matched
}

func baseName(relativePath string) string {
	if i := strings.LastIndexByte(relativePath, '/'); i >= 0 {
		return relativePath[i+1:]
	}

	return relativePath
}
