package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"

	"github.com/pkg/sftp"
)

// Exported variables.
var (
	// ErrNotFound reports a path that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied reports a path the caller may not access.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrWalkInternal covers walk failures that have no more specific kind.
	ErrWalkInternal = errors.New("walk error")
	// ErrStatusUnavailable reports an entry whose status could not be read mid-walk.
	ErrStatusUnavailable = errors.New("status unavailable")
	// ErrConnectionLost reports a remote walk whose transport went away.
	ErrConnectionLost = fmt.Errorf("connection lost: %w", ErrWalkInternal)
)

// Operations recorded in PathError.
const (
	opStat      = "stat"
	opOpen      = "open"
	opRead      = "read"
	opWalk      = "walk"
	opCanonical = "canonical"
	opFileName  = "filename"
	opDirectory = "dirname"
	opGetwd     = "getwd"
	opChdir     = "chdir"
)

// PathError describes a failure on one path. Kind is one of the Err*
// sentinels of this package; Err is the underlying cause.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

//nolint:cyclop // One message per operation
func (e *PathError) Error() string {
	switch e.Op {
	case opStat:
		return fmt.Sprintf("could not get file information for %s: %v", e.Path, e.cause())
	case opOpen:
		return fmt.Sprintf("could not open %s: %v", e.Path, e.cause())
	case opRead:
		return fmt.Sprintf("could not read %s: %v", e.Path, e.cause())
	case opWalk:
		return fmt.Sprintf("walk of %s stopped: %v", e.Path, e.cause())
	case opCanonical:
		return fmt.Sprintf("could not get canonical path of %s: %v", e.Path, e.cause())
	case opFileName:
		return fmt.Sprintf("could not get file name of %s: %v", e.Path, e.cause())
	case opDirectory:
		return fmt.Sprintf("could not get directory name of %s: %v", e.Path, e.cause())
	case opGetwd:
		return fmt.Sprintf("could not get current directory: %v", e.cause())
	case opChdir:
		return fmt.Sprintf("could not change directory to %s: %v", e.Path, e.cause())
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.cause())
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PathError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func (e *PathError) cause() error {
	if e.Err != nil {
		return e.Err
	}

	return e.Kind
}

// newPathError builds a PathError whose kind is derived from err.
func newPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: classify(err), Err: innermost(err)}
}

// classify maps an OS or SFTP error to one of the package's error kinds.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case isFatal(err):
		return ErrConnectionLost
	default:
		return ErrWalkInternal
	}
}

// isFatal reports errors after which a walk cannot make progress. Local
// filesystem errors are confined to one entry; a dead SFTP transport is not.
func isFatal(err error) bool {
	return errors.Is(err, sftp.ErrSSHFxConnectionLost) ||
		errors.Is(err, sftp.ErrSSHFxNoConnection) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}

// innermost strips *fs.PathError so messages do not repeat the path.
func innermost(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}

	return err
}
