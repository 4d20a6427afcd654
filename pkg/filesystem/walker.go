package filesystem

import (
	"errors"
	"fmt"
	"iter"
	"runtime"
)

// WalkOptions configures a TreeWalker. The zero value lists only the root's
// immediate children and attaches no attributes.
type WalkOptions struct {
	// Recurse descends into subdirectories.
	Recurse bool
	// Attributes attaches an Attributes snapshot to every visit.
	Attributes bool
}

// Visit is one entry yielded by a TreeWalker.
type Visit struct {
	// Path is the entry's path, rooted at the walk root as given.
	Path string
	// Kind is the entry's type, reported whether or not attributes are on.
	// It is a walk-level field and not part of the Attributes snapshot.
	// Without attributes it comes from the directory entry; KindOther when
	// the status lookup failed.
	Kind EntryKind
	// Attributes is nil unless WalkOptions.Attributes is set, and also nil
	// when the entry's status could not be read.
	Attributes *Attributes
	// Err reports a failure confined to this entry. The walk goes on.
	Err error
}

// TreeWalker is a pull-based, pre-order walk over a directory tree. It does
// not follow symlinks. A TreeWalker must be used by one goroutine at a time.
type TreeWalker struct {
	cursor  *cursor
	options WalkOptions
	current *rawEntry
	cleanup runtime.Cleanup
	err     error
}

// Open starts a walk of the local tree rooted at root. The root itself is
// not yielded; the first visit is its first child. One exception: when the
// root exists but its listing fails, Open still succeeds and the only visit
// is the root carrying a "could not read" error, followed by a clean end.
func Open(root string, opts WalkOptions) (*TreeWalker, error) {
	return OpenTree(root, NewLocalTree(opts.Attributes), opts)
}

// OpenTree starts a walk of root on any Tree. It yields the same sequence as
// Open, including the unreadable root case.
func OpenTree(root string, tree Tree, opts WalkOptions) (*TreeWalker, error) {
	return openCursor(newCursor(root, tree, nil), root, opts)
}

func openCursor(c *cursor, root string, opts WalkOptions) (*TreeWalker, error) {
	// Consume the root's own entry.
	first := c.read()

	switch {
	case first == nil && c.err != nil:
		err := c.err
		_ = c.close()

		return nil, err
	case first != nil && first.err != nil:
		_ = c.close()
		return nil, newPathError(opOpen, root, first.err)
	}

	walker := &TreeWalker{cursor: c, options: opts}
	walker.cleanup = runtime.AddCleanup(walker, func(c *cursor) { _ = c.close() }, c)

	return walker, nil
}

// Next yields the next entry in pre-order. It returns false once the walk has
// ended; Err then tells a clean end from one caused by a fault. After that
// Next keeps returning false without touching the filesystem.
func (w *TreeWalker) Next() (Visit, bool) {
	if w.cursor == nil {
		return Visit{}, false
	}

	w.current = nil

	entry := w.cursor.read()
	for entry != nil && entry.info == infoDirPost {
		entry = w.cursor.read()
	}

	if entry == nil {
		w.finish()
		return Visit{}, false
	}

	if entry.info == infoDir && !w.options.Recurse {
		w.cursor.skip(entry)
	}

	w.current = entry

	return w.visit(entry), true
}

// Err returns the fault that ended the walk, or nil.
func (w *TreeWalker) Err() error {
	return w.err
}

// SkipDescendants prunes the directory returned by the most recent Next, so
// none of its children are visited. It reports whether anything was pruned;
// outside that window, or for a non-directory, it does nothing.
func (w *TreeWalker) SkipDescendants() bool {
	if w.cursor == nil || w.current == nil {
		return false
	}

	pruned := w.cursor.skip(w.current)
	w.current = nil

	return pruned
}

// Close releases the walk. It is idempotent and a no-op after the walk ended.
func (w *TreeWalker) Close() error {
	if w.cursor == nil {
		return nil
	}

	err := w.cursor.close()
	w.release()

	if err != nil {
		return fmt.Errorf("failed to close walk: %w", err)
	}

	return nil
}

// All returns an iterator over the remaining visits. The walker is closed
// when the loop ends, including on break.
func (w *TreeWalker) All() iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		defer func() {
			_ = w.Close()
		}()

		for {
			visit, ok := w.Next()
			if !ok || !yield(visit) {
				return
			}
		}
	}
}

// Walk opens root, hands the walker to fn and closes it on every path out.
// It returns fn's error, or else the fault that ended the walk.
func Walk(root string, opts WalkOptions, fn func(*TreeWalker) error) error {
	walker, err := Open(root, opts)
	if err != nil {
		return err
	}

	fnErr := fn(walker)
	walkErr := walker.Err()
	closeErr := walker.Close()

	if fnErr != nil {
		return fnErr
	}

	return errors.Join(walkErr, closeErr)
}

// finish closes the walk after the last entry and records any fault.
func (w *TreeWalker) finish() {
	w.err = w.cursor.err

	if err := w.cursor.close(); err != nil && w.err == nil {
		w.err = fmt.Errorf("failed to close walk: %w", err)
	}

	w.release()
}

func (w *TreeWalker) release() {
	w.cursor = nil
	w.current = nil
	w.cleanup.Stop()
}

func (w *TreeWalker) visit(entry *rawEntry) Visit {
	visit := Visit{Path: entry.path, Kind: KindOther}

	if entry.info == infoNoStat {
		visit.Err = &PathError{
			Op:   opStat,
			Path: entry.path,
			Kind: ErrStatusUnavailable,
			Err:  innermost(entry.err),
		}

		return visit
	}

	visit.Kind = kindFromFileMode(entry.stat.Mode())

	if entry.info == infoDirUnreadable {
		visit.Err = newPathError(opRead, entry.path, entry.err)
	}

	if w.options.Attributes {
		attrs := attributesOf(entry)
		visit.Attributes = &attrs
	}

	return visit
}

func attributesOf(entry *rawEntry) Attributes {
	if raw, ok := entry.stat.Sys().(*RawStatus); ok {
		return Snapshot(*raw)
	}

	return Snapshot(rawFromFileInfo(entry.stat))
}
