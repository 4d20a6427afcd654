//go:build linux

package filesystem

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

const statxMask = unix.STATX_BASIC_STATS | unix.STATX_BTIME

// lstatRaw reads the status of path without following a final symlink.
func lstatRaw(path string) (RawStatus, error) {
	return statxRaw(path, unix.AT_SYMLINK_NOFOLLOW)
}

// statRaw reads the status of path, following symlinks.
func statRaw(path string) (RawStatus, error) {
	return statxRaw(path, 0)
}

func statxRaw(path string, flags int) (RawStatus, error) {
	var stx unix.Statx_t

	err := unix.Statx(unix.AT_FDCWD, path, flags, statxMask, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return statFallback(path, flags)
	}
	if err != nil {
		return RawStatus{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	raw := RawStatus{
		Mode:       uint32(stx.Mode),
		ModTime:    statxTime(stx.Mtime),
		ChangeTime: statxTime(stx.Ctime),
		Size:       int64(stx.Size), //nolint:gosec // File sizes fit in int64
	}

	// Not every filesystem records a birth time.
	if stx.Mask&unix.STATX_BTIME != 0 {
		raw.BirthTime = statxTime(stx.Btime)
	} else {
		raw.BirthTime = raw.ChangeTime
	}

	return raw, nil
}

// statFallback serves kernels without statx(2).
func statFallback(path string, flags int) (RawStatus, error) {
	var st unix.Stat_t

	var err error
	if flags&unix.AT_SYMLINK_NOFOLLOW != 0 {
		err = unix.Lstat(path, &st)
	} else {
		err = unix.Stat(path, &st)
	}
	if err != nil {
		return RawStatus{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	changed := Timespec{Sec: int64(st.Ctim.Sec), Nsec: int64(st.Ctim.Nsec)} //nolint:unconvert // int32 on 32-bit targets

	return RawStatus{
		Mode:       st.Mode,
		ModTime:    Timespec{Sec: int64(st.Mtim.Sec), Nsec: int64(st.Mtim.Nsec)}, //nolint:unconvert // int32 on 32-bit targets
		ChangeTime: changed,
		BirthTime:  changed,
		Size:       st.Size,
	}, nil
}

func statxTime(ts unix.StatxTimestamp) Timespec {
	return Timespec{Sec: ts.Sec, Nsec: int64(ts.Nsec)}
}
