package filesystem

import (
	"errors"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// errNotDirectory is returned when listing a mock entry that is not a directory.
var errNotDirectory = errors.New("not a directory")

// MockTree is an in-memory Tree for tests. Paths use forward slashes.
// Failures can be injected per path.
type MockTree struct {
	mu           sync.RWMutex
	nodes        map[string]*mockNode
	readDirErrs  map[string]error
	statErrs     map[string]error
	readDirCalls map[string]int
}

// mockNode is one entry of a MockTree.
type mockNode struct {
	mode    os.FileMode
	size    int64
	modTime time.Time
}

// mockFileInfo implements os.FileInfo for mock entries.
type mockFileInfo struct {
	name string
	node mockNode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.node.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *mockFileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.node.mode.IsDir() }
func (fi *mockFileInfo) Sys() any           { return nil }

// NewMockTree creates an empty in-memory tree.
func NewMockTree() *MockTree {
	return &MockTree{
		nodes:        make(map[string]*mockNode),
		readDirErrs:  make(map[string]error),
		statErrs:     make(map[string]error),
		readDirCalls: make(map[string]int),
	}
}

// AddDir adds a directory and any missing parents.
func (t *MockTree) AddDir(name string, modTime time.Time) {
	t.add(name, mockNode{mode: os.ModeDir | 0o755, modTime: modTime})
}

// AddFile adds a regular file of the given size and any missing parents.
func (t *MockTree) AddFile(name string, size int64, modTime time.Time) {
	t.add(name, mockNode{mode: 0o644, size: size, modTime: modTime})
}

// AddNode adds an entry with an arbitrary mode, e.g. a symlink or socket.
func (t *MockTree) AddNode(name string, mode os.FileMode, modTime time.Time) {
	t.add(name, mockNode{mode: mode, modTime: modTime})
}

// FailReadDir makes listing name fail with err.
func (t *MockTree) FailReadDir(name string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.readDirErrs[path.Clean(name)] = err
}

// FailStat makes the status lookup of name fail with err.
func (t *MockTree) FailStat(name string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.statErrs[path.Clean(name)] = err
}

// ReadDirCalls returns how often name was listed.
func (t *MockTree) ReadDirCalls(name string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.readDirCalls[path.Clean(name)]
}

// Join joins path elements with forward slashes.
func (t *MockTree) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns the entry at name.
func (t *MockTree) Lstat(name string) (os.FileInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	clean := path.Clean(name)
	if err := t.statErrs[clean]; err != nil {
		return nil, &os.PathError{Op: "lstat", Path: name, Err: err}
	}

	node, ok := t.nodes[clean]
	if !ok {
		return nil, &os.PathError{Op: "lstat", Path: name, Err: os.ErrNotExist}
	}

	return &mockFileInfo{name: path.Base(clean), node: *node}, nil
}

// ReadDir lists the direct children of name sorted by name.
func (t *MockTree) ReadDir(name string) ([]os.FileInfo, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dir := path.Clean(name)
	t.readDirCalls[dir]++

	if err := t.readDirErrs[dir]; err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	node, ok := t.nodes[dir]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	if !node.mode.IsDir() {
		return nil, &os.PathError{Op: "readdir", Path: name, Err: errNotDirectory}
	}

	var infos []os.FileInfo

	for p, child := range t.nodes {
		if p == dir || path.Dir(p) != dir {
			continue
		}

		base := path.Base(p)
		if err := t.statErrs[p]; err != nil {
			infos = append(infos, NoStatus(base, err))
			continue
		}

		infos = append(infos, &mockFileInfo{name: base, node: *child})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	return infos, nil
}

func (t *MockTree) add(name string, node mockNode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	clean := path.Clean(name)
	for parent := path.Dir(clean); ; parent = path.Dir(parent) {
		if _, ok := t.nodes[parent]; !ok {
			t.nodes[parent] = &mockNode{mode: os.ModeDir | 0o755, modTime: node.modTime}
		}

		if parent == "/" || parent == "." || !strings.Contains(parent, "/") {
			break
		}
	}

	t.nodes[clean] = &node
}
