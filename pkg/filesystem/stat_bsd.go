//go:build darwin || freebsd || netbsd

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// lstatRaw reads the status of path without following a final symlink.
func lstatRaw(path string) (RawStatus, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return RawStatus{}, &os.PathError{Op: "lstat", Path: path, Err: err}
	}

	return rawFromStat(&st), nil
}

// statRaw reads the status of path, following symlinks.
func statRaw(path string) (RawStatus, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return RawStatus{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	return rawFromStat(&st), nil
}

//nolint:unconvert // Field widths differ between the BSDs
func rawFromStat(st *unix.Stat_t) RawStatus {
	return RawStatus{
		Mode:       uint32(st.Mode),
		ModTime:    Timespec{Sec: int64(st.Mtim.Sec), Nsec: int64(st.Mtim.Nsec)},
		ChangeTime: Timespec{Sec: int64(st.Ctim.Sec), Nsec: int64(st.Ctim.Nsec)},
		BirthTime:  Timespec{Sec: int64(st.Btim.Sec), Nsec: int64(st.Btim.Nsec)},
		Size:       int64(st.Size),
	}
}
