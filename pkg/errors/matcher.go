package errors

import (
	"errors"
	"strings"

	"github.com/joe/treewalk/pkg/filesystem"
)

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		// Checked in order; the first category with a matching phrase wins.
		patterns: []categoryPatterns{
			{CategoryConnection, []string{
				"connection lost",
				"connection refused",
				"connection reset",
				"ssh connection failed",
				"use of closed network connection",
				"no route to host",
			}},
			{CategoryStatus, []string{
				"status unavailable",
				"could not get file information",
			}},
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file not found",
				"path does not exist",
				"not a directory",
			}},
			{CategoryWalk, []string{
				"too many open files",
				"input/output error",
				"i/o error",
			}},
		},
	}
}

// CategoryOf categorizes err by the filesystem error kind in its chain.
// It returns CategoryUnknown when err carries no kind.
func CategoryOf(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryUnknown
	case errors.Is(err, filesystem.ErrConnectionLost):
		return CategoryConnection
	case errors.Is(err, filesystem.ErrStatusUnavailable):
		return CategoryStatus
	case errors.Is(err, filesystem.ErrPermissionDenied):
		return CategoryPermission
	case errors.Is(err, filesystem.ErrNotFound):
		return CategoryPath
	case errors.Is(err, filesystem.ErrWalkInternal):
		return CategoryWalk
	default:
		return CategoryUnknown
	}
}

type categoryPatterns struct {
	category ErrorCategory
	phrases  []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	patterns []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, group := range m.patterns {
		for _, phrase := range group.phrases {
			if strings.Contains(lowerMsg, phrase) {
				return group.category
			}
		}
	}

	return CategoryUnknown
}
