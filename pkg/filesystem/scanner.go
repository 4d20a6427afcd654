package filesystem

// TreeScanner is a resumable walk over a directory tree. It follows the
// Next/Err pattern: call Next until it returns false, then check Err.
type TreeScanner interface {
	// Next advances to the next entry in pre-order.
	// Returns (Visit{}, false) when the walk has ended.
	Next() (Visit, bool)

	// Err returns the fault that ended the walk, or nil for a clean end.
	// Should be checked after Next() returns false.
	Err() error

	// SkipDescendants prunes the directory returned by the last Next.
	// Reports whether anything was pruned.
	SkipDescendants() bool

	// Close releases the walk. Safe to call more than once.
	Close() error
}

// Compile-time check.
var _ TreeScanner = (*TreeWalker)(nil)
