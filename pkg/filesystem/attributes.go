package filesystem

import (
	"fmt"
	"os"
	"time"
)

// POSIX file type bits. Kept local so classification behaves the same on every
// platform, including remote SFTP servers that report raw mode words.
const (
	modeTypeMask    = 0o170000
	modeBlockDevice = 0o060000
	modeCharDevice  = 0o020000
	modeDirectory   = 0o040000
	modeNamedPipe   = 0o010000
	modeRegular     = 0o100000
	modeSymlink     = 0o120000
	modeSocket      = 0o140000
)

// nanosecondsPerSecond converts timespec nanoseconds to fractional seconds.
const nanosecondsPerSecond = 1e9

// EntryKind classifies a filesystem entry.
type EntryKind int

// Entry kinds, in the order they are tested against mode bits.
const (
	KindBlockDevice EntryKind = iota
	KindCharacterDevice
	KindDirectory
	KindNamedPipe
	KindRegularFile
	KindSymbolicLink
	KindSocket
	KindOther
)

// String returns the name used for the kind in output.
func (k EntryKind) String() string {
	switch k {
	case KindBlockDevice:
		return "BlockDevice"
	case KindCharacterDevice:
		return "CharacterDevice"
	case KindDirectory:
		return "Directory"
	case KindNamedPipe:
		return "NamedPipe"
	case KindRegularFile:
		return "RegularFile"
	case KindSymbolicLink:
		return "SymbolicLink"
	case KindSocket:
		return "Socket"
	default:
		return "Other"
	}
}

// Timespec is a seconds+nanoseconds timestamp as reported by the OS.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// Seconds returns the timestamp as fractional seconds since the epoch.
// Very large timestamps lose sub-microsecond precision.
func (t Timespec) Seconds() float64 {
	return float64(t.Sec) + float64(t.Nsec)/nanosecondsPerSecond
}

// RawStatus is the subset of an OS status record needed to build Attributes.
type RawStatus struct {
	// Mode holds POSIX mode bits (type and permissions).
	Mode uint32

	ModTime    Timespec
	ChangeTime Timespec
	BirthTime  Timespec

	Size int64
}

// Attributes is an immutable snapshot of one entry's status.
type Attributes struct {
	Kind             EntryKind
	ModificationTime float64
	ChangeTime       float64
	CreationTime     float64
	Size             int64
}

// Snapshot maps a raw status record to Attributes.
func Snapshot(raw RawStatus) Attributes {
	size := raw.Size
	if size < 0 {
		size = 0
	}

	return Attributes{
		Kind:             kindFromMode(raw.Mode),
		ModificationTime: raw.ModTime.Seconds(),
		ChangeTime:       raw.ChangeTime.Seconds(),
		CreationTime:     raw.BirthTime.Seconds(),
		Size:             size,
	}
}

// QueryAttributes returns the attributes of path, following symbolic links.
func QueryAttributes(path string) (Attributes, error) {
	raw, err := statRaw(path)
	if err != nil {
		return Attributes{}, newPathError(opStat, path, err)
	}

	return Snapshot(raw), nil
}

// kindFromMode tests the type bits in a fixed priority order.
//
//nolint:cyclop // One branch per entry kind
func kindFromMode(mode uint32) EntryKind {
	typ := mode & modeTypeMask

	switch {
	case typ == modeBlockDevice:
		return KindBlockDevice
	case typ == modeCharDevice:
		return KindCharacterDevice
	case typ == modeDirectory:
		return KindDirectory
	case typ == modeNamedPipe:
		return KindNamedPipe
	case typ == modeRegular:
		return KindRegularFile
	case typ == modeSymlink:
		return KindSymbolicLink
	case typ == modeSocket:
		return KindSocket
	default:
		return KindOther
	}
}

// kindFromFileMode classifies a Go file mode. Used when only the directory
// entry type is known.
func kindFromFileMode(mode os.FileMode) EntryKind {
	return kindFromMode(posixMode(mode))
}

// posixMode converts a Go file mode into POSIX mode bits.
func posixMode(mode os.FileMode) uint32 {
	perm := uint32(mode.Perm())

	switch {
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return perm | modeCharDevice
	case mode&os.ModeDevice != 0:
		return perm | modeBlockDevice
	case mode.IsDir():
		return perm | modeDirectory
	case mode&os.ModeNamedPipe != 0:
		return perm | modeNamedPipe
	case mode&os.ModeSymlink != 0:
		return perm | modeSymlink
	case mode&os.ModeSocket != 0:
		return perm | modeSocket
	case mode.IsRegular():
		return perm | modeRegular
	default:
		return perm
	}
}

// fileMode converts POSIX mode bits into a Go file mode.
func fileMode(mode uint32) os.FileMode {
	perm := os.FileMode(mode & 0o777)

	switch kindFromMode(mode) {
	case KindBlockDevice:
		return perm | os.ModeDevice
	case KindCharacterDevice:
		return perm | os.ModeDevice | os.ModeCharDevice
	case KindDirectory:
		return perm | os.ModeDir
	case KindNamedPipe:
		return perm | os.ModeNamedPipe
	case KindRegularFile:
		return perm
	case KindSymbolicLink:
		return perm | os.ModeSymlink
	case KindSocket:
		return perm | os.ModeSocket
	default:
		return perm | os.ModeIrregular
	}
}

// rawFromFileInfo rebuilds a status record from a Go file info. Only the
// modification time is known, so it stands in for the other two timestamps.
func rawFromFileInfo(info os.FileInfo) RawStatus {
	ts := timespecOf(info.ModTime())

	return RawStatus{
		Mode:       posixMode(info.Mode()),
		ModTime:    ts,
		ChangeTime: ts,
		BirthTime:  ts,
		Size:       info.Size(),
	}
}

func timespecOf(t time.Time) Timespec {
	if t.IsZero() {
		return Timespec{}
	}

	return Timespec{Sec: t.Unix(), Nsec: int64(t.Nanosecond())}
}

func (a Attributes) String() string {
	return fmt.Sprintf("%s size=%d mtime=%.3f", a.Kind, a.Size, a.ModificationTime)
}
