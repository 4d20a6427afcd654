package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/joe/treewalk/pkg/errors"
	"github.com/joe/treewalk/pkg/filesystem"
)

func TestPatternMatcher_Match(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		errorMsg string
		expected pkgerrors.ErrorCategory
	}{
		{name: "uppercase permission denied", errorMsg: "PERMISSION DENIED", expected: pkgerrors.CategoryPermission},
		{name: "operation not permitted", errorMsg: "lstat /x: operation not permitted", expected: pkgerrors.CategoryPermission},
		{name: "missing path", errorMsg: "open /x: No Such File Or Directory", expected: pkgerrors.CategoryPath},
		{name: "status", errorMsg: "could not get file information for /x: permission denied", expected: pkgerrors.CategoryStatus},
		{name: "ssh dial", errorMsg: "SSH connection failed: dial tcp: i/o timeout", expected: pkgerrors.CategoryConnection},
		{name: "closed connection", errorMsg: "use of closed network connection", expected: pkgerrors.CategoryConnection},
		{name: "io error", errorMsg: "readdirent: input/output error", expected: pkgerrors.CategoryWalk},
		{name: "unmatched", errorMsg: "something else", expected: pkgerrors.CategoryUnknown},
	}

	matcher := pkgerrors.NewPatternMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			category := matcher.Match(testCase.errorMsg)
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for error: %q",
					testCase.expected, category, testCase.errorMsg)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected pkgerrors.ErrorCategory
	}{
		{name: "nil", err: nil, expected: pkgerrors.CategoryUnknown},
		{name: "plain", err: errors.New("x"), expected: pkgerrors.CategoryUnknown},
		{name: "wrapped not found", err: fmt.Errorf("ctx: %w", filesystem.ErrNotFound), expected: pkgerrors.CategoryPath},
		{name: "connection before walk", err: filesystem.ErrConnectionLost, expected: pkgerrors.CategoryConnection},
		{name: "walk", err: filesystem.ErrWalkInternal, expected: pkgerrors.CategoryWalk},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := pkgerrors.CategoryOf(testCase.err); got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}
