//go:build !linux && !darwin && !freebsd && !netbsd

package filesystem

import (
	"os"
)

// lstatRaw reads the status of path without following a final symlink.
// Platforms without a unix.Stat_t only expose the modification time, so it
// stands in for the change and creation times.
func lstatRaw(path string) (RawStatus, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return RawStatus{}, err //nolint:wrapcheck // Already an *os.PathError
	}

	return rawFromFileInfo(info), nil
}

// statRaw reads the status of path, following symlinks.
func statRaw(path string) (RawStatus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return RawStatus{}, err //nolint:wrapcheck // Already an *os.PathError
	}

	return rawFromFileInfo(info), nil
}
