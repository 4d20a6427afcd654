//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/treewalk/pkg/filesystem"
)

func TestSnapshot_ClassifiesModeBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode uint32
		want filesystem.EntryKind
	}{
		{name: "block device", mode: 0o060660, want: filesystem.KindBlockDevice},
		{name: "character device", mode: 0o020666, want: filesystem.KindCharacterDevice},
		{name: "directory", mode: 0o040755, want: filesystem.KindDirectory},
		{name: "named pipe", mode: 0o010644, want: filesystem.KindNamedPipe},
		{name: "regular file", mode: 0o100644, want: filesystem.KindRegularFile},
		{name: "symbolic link", mode: 0o120777, want: filesystem.KindSymbolicLink},
		{name: "socket", mode: 0o140755, want: filesystem.KindSocket},
		{name: "no type bits", mode: 0o644, want: filesystem.KindOther},
		{name: "unknown type bits", mode: 0o170000, want: filesystem.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := filesystem.Snapshot(filesystem.RawStatus{Mode: tt.mode})
			if got.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestSnapshot_ConvertsTimestampsAndSize(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	got := filesystem.Snapshot(filesystem.RawStatus{
		Mode:       0o100644,
		ModTime:    filesystem.Timespec{Sec: 100, Nsec: 500_000_000},
		ChangeTime: filesystem.Timespec{Sec: 200, Nsec: 250_000_000},
		BirthTime:  filesystem.Timespec{Sec: 50},
		Size:       4096,
	})

	g.Expect(got.ModificationTime).To(BeNumerically("~", 100.5, 1e-9))
	g.Expect(got.ChangeTime).To(BeNumerically("~", 200.25, 1e-9))
	g.Expect(got.CreationTime).To(BeNumerically("~", 50.0, 1e-9))
	g.Expect(got.Size).To(Equal(int64(4096)))
}

func TestSnapshot_ClampsNegativeSize(t *testing.T) {
	t.Parallel()

	got := filesystem.Snapshot(filesystem.RawStatus{Mode: 0o100644, Size: -1})
	if got.Size != 0 {
		t.Errorf("Size = %d, want 0", got.Size)
	}
}

func TestEntryKind_String(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	g.Expect(filesystem.KindRegularFile.String()).To(Equal("RegularFile"))
	g.Expect(filesystem.KindDirectory.String()).To(Equal("Directory"))
	g.Expect(filesystem.KindOther.String()).To(Equal("Other"))
	g.Expect(filesystem.EntryKind(42).String()).To(Equal("Other"))
}

func TestQueryAttributes_RegularFileAndDirectory(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "data.bin")
	g.Expect(os.WriteFile(file, make([]byte, 123), 0o600)).To(Succeed())

	attrs, err := filesystem.QueryAttributes(file)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(attrs.Kind).To(Equal(filesystem.KindRegularFile))
	g.Expect(attrs.Size).To(Equal(int64(123)))
	g.Expect(attrs.ModificationTime).To(BeNumerically(">", 0))
	g.Expect(attrs.ChangeTime).To(BeNumerically(">", 0))
	g.Expect(attrs.CreationTime).To(BeNumerically(">", 0))

	attrs, err = filesystem.QueryAttributes(dir)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(attrs.Kind).To(Equal(filesystem.KindDirectory))
}

func TestQueryAttributes_FollowsSymlinks(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	g.Expect(os.WriteFile(target, []byte("x"), 0o600)).To(Succeed())
	g.Expect(os.Symlink(target, link)).To(Succeed())

	attrs, err := filesystem.QueryAttributes(link)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(attrs.Kind).To(Equal(filesystem.KindRegularFile))
}

func TestQueryAttributes_MissingPath(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	missing := filepath.Join(t.TempDir(), "missing")

	_, err := filesystem.QueryAttributes(missing)
	g.Expect(err).To(MatchError(filesystem.ErrNotFound))
	g.Expect(err.Error()).To(ContainSubstring("could not get file information for " + missing))

	var pathErr *filesystem.PathError
	g.Expect(err).To(BeAssignableToTypeOf(pathErr))
}
