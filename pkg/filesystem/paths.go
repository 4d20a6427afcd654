package filesystem

import (
	"errors"
	"os"
	"path/filepath"
)

// errEmptyPath is returned by the path helpers for an empty argument.
var errEmptyPath = errors.New("empty path")

// CanonicalPath returns the absolute path of path with symlinks, "." and ".."
// resolved. The path must exist.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", newPathError(opCanonical, path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", newPathError(opCanonical, path, err)
	}

	return resolved, nil
}

// FileName returns the last element of path, ignoring trailing separators.
func FileName(path string) (string, error) {
	if path == "" {
		return "", newPathError(opFileName, path, errEmptyPath)
	}

	return filepath.Base(path), nil
}

// DirectoryPath returns all but the last element of path.
func DirectoryPath(path string) (string, error) {
	if path == "" {
		return "", newPathError(opDirectory, path, errEmptyPath)
	}

	return filepath.Dir(path), nil
}

// CurrentDirectory returns the process working directory.
func CurrentDirectory() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", newPathError(opGetwd, "", err)
	}

	return dir, nil
}

// ChangeDirectory sets the process working directory.
func ChangeDirectory(path string) error {
	if err := os.Chdir(path); err != nil {
		return newPathError(opChdir, path, err)
	}

	return nil
}
