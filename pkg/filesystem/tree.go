package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	krfs "github.com/kr/fs"
	"github.com/pkg/sftp"
)

// Tree is a walkable filesystem: the contract of github.com/kr/fs.
// Local, SFTP and in-memory trees all satisfy it.
type Tree = krfs.FileSystem

// LocalTree walks the local filesystem without following symlinks.
type LocalTree struct {
	// WithStatus makes ReadDir lstat every child. Without it children carry
	// only their directory entry type.
	WithStatus bool
}

// NewLocalTree returns a local tree. withStatus controls per-entry lstat calls.
func NewLocalTree(withStatus bool) *LocalTree {
	return &LocalTree{WithStatus: withStatus}
}

// Join joins path elements with the OS separator.
func (t *LocalTree) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Lstat returns the status of name without following a final symlink.
func (t *LocalTree) Lstat(name string) (os.FileInfo, error) {
	raw, err := lstatRaw(name)
	if err != nil {
		return nil, err
	}

	return newStatusInfo(filepath.Base(name), raw), nil
}

// ReadDir lists dirname sorted by name. Children whose status cannot be read
// are still listed; their info reports the failure.
func (t *LocalTree) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirname, err)
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !t.WithStatus {
			infos = append(infos, direntInfo{entry: entry})
			continue
		}

		raw, err := lstatRaw(filepath.Join(dirname, entry.Name()))
		if err != nil {
			infos = append(infos, &noStatusInfo{name: entry.Name(), err: err})
			continue
		}

		infos = append(infos, newStatusInfo(entry.Name(), raw))
	}

	return infos, nil
}

// RemoteTree walks a directory tree over SFTP. The server returns attributes
// with every listing, so status is always present.
type RemoteTree struct {
	client *sftp.Client
}

// NewRemoteTree wraps an SFTP client.
func NewRemoteTree(client *sftp.Client) *RemoteTree {
	return &RemoteTree{client: client}
}

// Join joins path elements with forward slashes.
func (t *RemoteTree) Join(elem ...string) string {
	return t.client.Join(elem...)
}

// Lstat returns the remote status of name without following a final symlink.
func (t *RemoteTree) Lstat(name string) (os.FileInfo, error) {
	info, err := t.client.Lstat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat remote path %s: %w", name, err)
	}

	return newStatusInfo(info.Name(), rawFromSFTP(info)), nil
}

// ReadDir lists a remote directory sorted by name.
func (t *RemoteTree) ReadDir(dirname string) ([]os.FileInfo, error) {
	list, err := t.client.ReadDir(dirname)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote directory %s: %w", dirname, err)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})

	infos := make([]os.FileInfo, 0, len(list))
	for _, info := range list {
		infos = append(infos, newStatusInfo(info.Name(), rawFromSFTP(info)))
	}

	return infos, nil
}

// rawFromSFTP maps SFTP attributes. The protocol carries only mtime, which
// stands in for the change and creation times.
func rawFromSFTP(info os.FileInfo) RawStatus {
	stat, ok := info.Sys().(*sftp.FileStat)
	if !ok {
		return rawFromFileInfo(info)
	}

	mtime := Timespec{Sec: int64(stat.Mtime)}

	return RawStatus{
		Mode:       stat.Mode,
		ModTime:    mtime,
		ChangeTime: mtime,
		BirthTime:  mtime,
		Size:       int64(stat.Size), //nolint:gosec // File sizes fit in int64
	}
}

// statusInfo is an os.FileInfo backed by a RawStatus.
type statusInfo struct {
	name string
	raw  RawStatus
}

func newStatusInfo(name string, raw RawStatus) *statusInfo {
	return &statusInfo{name: name, raw: raw}
}

func (s *statusInfo) Name() string      { return s.name }
func (s *statusInfo) Size() int64       { return s.raw.Size }
func (s *statusInfo) Mode() os.FileMode { return fileMode(s.raw.Mode) }
func (s *statusInfo) IsDir() bool       { return kindFromMode(s.raw.Mode) == KindDirectory }
func (s *statusInfo) Sys() any          { return &s.raw }

func (s *statusInfo) ModTime() time.Time {
	return time.Unix(s.raw.ModTime.Sec, s.raw.ModTime.Nsec)
}

// direntInfo carries only what the directory entry knows: name and type.
type direntInfo struct {
	entry os.DirEntry
}

func (d direntInfo) Name() string       { return d.entry.Name() }
func (d direntInfo) Size() int64        { return 0 }
func (d direntInfo) Mode() os.FileMode  { return d.entry.Type() }
func (d direntInfo) ModTime() time.Time { return time.Time{} }
func (d direntInfo) IsDir() bool        { return d.entry.IsDir() }
func (d direntInfo) Sys() any           { return nil }

// noStatusInfo stands for a listed child whose status lookup failed.
// It never reports a directory, so the walk does not descend into it.
type noStatusInfo struct {
	name string
	err  error
}

func (n *noStatusInfo) Name() string       { return n.name }
func (n *noStatusInfo) Size() int64        { return 0 }
func (n *noStatusInfo) Mode() os.FileMode  { return os.ModeIrregular }
func (n *noStatusInfo) ModTime() time.Time { return time.Time{} }
func (n *noStatusInfo) IsDir() bool        { return false }
func (n *noStatusInfo) Sys() any           { return nil }

// NoStatus returns an os.FileInfo for a child whose status lookup failed
// with err. Tree implementations return it from ReadDir.
func NoStatus(name string, err error) os.FileInfo {
	return &noStatusInfo{name: name, err: err}
}
