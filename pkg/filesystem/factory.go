package filesystem

import (
	"fmt"
)

// OpenLocation starts a walk of a local path or an sftp:// URL. A remote
// walker owns its SSH connection and closes it when the walk ends or is closed.
func OpenLocation(location string, opts WalkOptions) (*TreeWalker, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	if !loc.IsRemote {
		return Open(loc.Path, opts)
	}

	conn, err := Connect(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s@%s:%d: %w", loc.User, loc.Host, loc.Port, err)
	}

	c := newCursor(loc.Path, NewRemoteTree(conn.Client()), conn.Close)

	return openCursor(c, loc.Path, opts)
}
