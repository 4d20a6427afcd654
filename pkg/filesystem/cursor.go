package filesystem

import (
	"os"

	krfs "github.com/kr/fs"
)

// entryInfo classifies one raw walk entry.
type entryInfo int

const (
	// infoDir is a directory seen before its children.
	infoDir entryInfo = iota + 1
	// infoDirPost is a directory seen again after its children.
	infoDirPost
	infoFile
	infoSymlink
	// infoDefault is any other entry with a known status.
	infoDefault
	// infoNoStatOK is a non-directory whose status was not requested.
	infoNoStatOK
	// infoNoStat is an entry whose status lookup failed.
	infoNoStat
	// infoDirUnreadable is a directory whose listing failed.
	infoDirUnreadable
)

// rawEntry is one step of the raw walk. It is valid only while gen matches
// the cursor's generation.
type rawEntry struct {
	path string
	info entryInfo
	stat os.FileInfo
	err  error
	gen  uint64
	// live marks the entry the kr/fs walker is positioned on.
	live bool
}

// cursor turns a kr/fs walk into a pre/post-order entry stream. Directory
// listings are sorted by the Tree, children are visited in that order, and
// every directory entered is closed by exactly one post-order marker unless
// its listing failed.
type cursor struct {
	tree    Tree
	walker  *krfs.Walker
	stack   []string
	pending []*rawEntry
	gen     uint64
	done    bool
	closed  bool
	err     error
	closer  func() error
}

// newCursor starts a walk at root. closer, if set, runs once on close and
// releases whatever backs the tree.
func newCursor(root string, tree Tree, closer func() error) *cursor {
	return &cursor{
		tree:   tree,
		walker: krfs.WalkFS(root, tree),
		closer: closer,
	}
}

// read advances by one raw entry. It returns nil once the walk is exhausted,
// stopped by a fatal error, or closed. Every call invalidates the previous entry.
func (c *cursor) read() *rawEntry {
	if c.closed {
		return nil
	}

	c.gen++

	entry := c.advance()
	if entry != nil {
		entry.gen = c.gen
	}

	return entry
}

// skip prunes the directory entry e. It reports whether e was still current
// and a directory.
func (c *cursor) skip(e *rawEntry) bool {
	if c.closed || e == nil || e.gen != c.gen || !e.live || e.info != infoDir {
		return false
	}

	c.walker.SkipDir()

	return true
}

// close releases the walk. It is safe to call more than once.
func (c *cursor) close() error {
	if c.closed {
		return nil
	}

	c.closed = true
	c.walker = nil
	c.stack = nil
	c.pending = nil

	if c.closer != nil {
		return c.closer()
	}

	return nil
}

func (c *cursor) advance() *rawEntry {
	if len(c.pending) > 0 {
		entry := c.pending[0]
		c.pending = c.pending[1:]

		return entry
	}

	if c.done {
		return nil
	}

	if !c.walker.Step() {
		c.done = true
		for i := len(c.stack) - 1; i >= 0; i-- {
			c.pending = append(c.pending, &rawEntry{path: c.stack[i], info: infoDirPost})
		}
		c.stack = nil

		return c.advance()
	}

	entry := c.classify(c.walker.Path(), c.walker.Stat(), c.walker.Err())
	if entry == nil {
		c.done = true
		c.pending = nil

		return nil
	}

	if entry.info != infoDirUnreadable {
		c.leaveFinished(entry)
	}

	if entry.info == infoDir {
		c.stack = append(c.stack, entry.path)
	}

	if len(c.pending) > 0 {
		c.pending = append(c.pending, entry)
		return c.advance()
	}

	return entry
}

// leaveFinished queues post-order markers for every open directory that is
// not the parent of e.
func (c *cursor) leaveFinished(e *rawEntry) {
	if e.stat == nil {
		return
	}

	name := e.stat.Name()
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if c.tree.Join(top, name) == e.path {
			return
		}

		c.pending = append(c.pending, &rawEntry{path: top, info: infoDirPost})
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// classify builds the raw entry for the walker's position. It returns nil
// and records c.err when the failure ends the walk.
func (c *cursor) classify(path string, stat os.FileInfo, err error) *rawEntry {
	if err != nil {
		if isFatal(err) {
			c.err = newPathError(opWalk, path, err)
			return nil
		}

		// A listing failure re-visits the directory just entered. It is
		// closed here and gets no post-order marker.
		if n := len(c.stack); n > 0 && c.stack[n-1] == path {
			c.stack = c.stack[:n-1]
			return &rawEntry{path: path, info: infoDirUnreadable, stat: stat, err: err, live: true}
		}

		// Only the root has no listing to fail in; its lstat did.
		return &rawEntry{path: path, info: infoNoStat, err: err, live: true}
	}

	if ns, ok := stat.(*noStatusInfo); ok {
		if isFatal(ns.err) {
			c.err = newPathError(opWalk, path, ns.err)
			return nil
		}

		return &rawEntry{path: path, info: infoNoStat, stat: stat, err: ns.err, live: true}
	}

	entry := &rawEntry{path: path, stat: stat, live: true}

	_, typeOnly := stat.(direntInfo)

	switch {
	case stat.IsDir():
		entry.info = infoDir
	case typeOnly:
		entry.info = infoNoStatOK
	case stat.Mode()&os.ModeSymlink != 0:
		entry.info = infoSymlink
	case stat.Mode().IsRegular():
		entry.info = infoFile
	default:
		entry.info = infoDefault
	}

	return entry
}
