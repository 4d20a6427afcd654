//nolint:varnamelen // Test files use idiomatic short variable names
package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/joe/treewalk/pkg/filesystem"
)

func TestCanonicalPath(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(os.MkdirAll(filepath.Join(dir, "real", "inner"), 0o750)).To(Succeed())
	g.Expect(os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "alias"))).To(Succeed())

	got, err := filesystem.CanonicalPath(filepath.Join(dir, "alias", "inner", "..", "inner"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal(filepath.Join(dir, "real", "inner")))
}

func TestCanonicalPathMissing(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, err := filesystem.CanonicalPath(filepath.Join(t.TempDir(), "nope"))
	g.Expect(err).To(MatchError(filesystem.ErrNotFound))
	g.Expect(err.Error()).To(ContainSubstring("could not get canonical path of"))
}

func TestFileNameAndDirectoryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		name string
		dir  string
	}{
		{path: "/a/b/c.txt", name: "c.txt", dir: "/a/b"},
		{path: "/a/b/", name: "b", dir: "/a/b"},
		{path: "c.txt", name: "c.txt", dir: "."},
		{path: "/", name: "/", dir: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			name, err := filesystem.FileName(filepath.FromSlash(tt.path))
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(filepath.ToSlash(name)).To(Equal(tt.name))

			dir, err := filesystem.DirectoryPath(filepath.FromSlash(tt.path))
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(filepath.ToSlash(dir)).To(Equal(tt.dir))
		})
	}
}

func TestPathHelpersRejectEmpty(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, err := filesystem.FileName("")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("could not get file name"))

	_, err = filesystem.DirectoryPath("")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("could not get directory name"))
}

// Changes the process working directory, so it must not run in parallel.
func TestChangeDirectory(t *testing.T) {
	g := NewWithT(t)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	g.Expect(err).NotTo(HaveOccurred())

	// Restores the original directory when the test ends.
	t.Chdir(".")

	g.Expect(filesystem.ChangeDirectory(dir)).To(Succeed())

	cwd, err := filesystem.CurrentDirectory()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cwd).To(Equal(dir))

	err = filesystem.ChangeDirectory(filepath.Join(dir, "missing"))
	g.Expect(err).To(MatchError(filesystem.ErrNotFound))

	cwd, err = filesystem.CurrentDirectory()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cwd).To(Equal(dir))
}
