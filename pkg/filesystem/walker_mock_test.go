//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"io/fs"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
	"github.com/pkg/sftp"

	"github.com/joe/treewalk/pkg/filesystem"
)

func sampleTree() *filesystem.MockTree {
	tree := filesystem.NewMockTree()
	now := time.Unix(1_700_000_000, 0)

	tree.AddDir("/r", now)
	tree.AddFile("/r/a.txt", 10, now)
	tree.AddDir("/r/sub", now)
	tree.AddFile("/r/sub/b.txt", 20, now)
	tree.AddNode("/r/sub/link", os.ModeSymlink|0o777, now)
	tree.AddFile("/r/z.txt", 30, now)

	return tree
}

func collectVisits(t *testing.T, walker filesystem.TreeScanner) []filesystem.Visit {
	t.Helper()

	var visits []filesystem.Visit

	for {
		visit, ok := walker.Next()
		if !ok {
			return visits
		}

		visits = append(visits, visit)
	}
}

func visitPaths(visits []filesystem.Visit) []string {
	paths := make([]string, 0, len(visits))
	for _, v := range visits {
		paths = append(paths, v.Path)
	}

	return paths
}

func TestMockWalk_NonRecursiveNeverListsSubdirectories(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{})
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(visitPaths(collectVisits(t, walker))).To(Equal([]string{"/r/a.txt", "/r/sub", "/r/z.txt"}))
	g.Expect(tree.ReadDirCalls("/r")).To(Equal(1))
	g.Expect(tree.ReadDirCalls("/r/sub")).To(Equal(0))
}

func TestMockWalk_RecursiveIsPreOrder(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	walker, err := filesystem.OpenTree("/r", sampleTree(), filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(visitPaths(collectVisits(t, walker))).To(Equal([]string{
		"/r/a.txt", "/r/sub", "/r/sub/b.txt", "/r/sub/link", "/r/z.txt",
	}))
	g.Expect(walker.Err()).ShouldNot(HaveOccurred())
}

func TestMockWalk_AttributesFromTreeInfo(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	walker, err := filesystem.OpenTree("/r", sampleTree(), filesystem.WalkOptions{Recurse: true, Attributes: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	visits := collectVisits(t, walker)
	g.Expect(visits).To(HaveLen(5))

	g.Expect(*visits[0].Attributes).To(Equal(filesystem.Attributes{
		Kind:             filesystem.KindRegularFile,
		ModificationTime: 1_700_000_000,
		ChangeTime:       1_700_000_000,
		CreationTime:     1_700_000_000,
		Size:             10,
	}))
	g.Expect(visits[1].Attributes.Kind).To(Equal(filesystem.KindDirectory))
	g.Expect(visits[3].Attributes.Kind).To(Equal(filesystem.KindSymbolicLink))
}

func TestMockWalk_StatusFailureIsPartial(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.FailStat("/r/sub/b.txt", fs.ErrPermission)

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{Recurse: true, Attributes: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	visits := collectVisits(t, walker)
	g.Expect(visitPaths(visits)).To(Equal([]string{
		"/r/a.txt", "/r/sub", "/r/sub/b.txt", "/r/sub/link", "/r/z.txt",
	}))

	failed := visits[2]
	g.Expect(failed.Attributes).To(BeNil())
	g.Expect(failed.Kind).To(Equal(filesystem.KindOther))
	g.Expect(failed.Err).To(MatchError(filesystem.ErrStatusUnavailable))
	g.Expect(failed.Err).To(MatchError(fs.ErrPermission))
	g.Expect(failed.Err.Error()).To(Equal("could not get file information for /r/sub/b.txt: permission denied"))

	g.Expect(visits[3].Err).ShouldNot(HaveOccurred())
	g.Expect(walker.Err()).ShouldNot(HaveOccurred())
}

func TestMockWalk_UnreadableDirectoryKeepsGoing(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.FailReadDir("/r/sub", fs.ErrPermission)

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	visits := collectVisits(t, walker)
	g.Expect(visitPaths(visits)).To(Equal([]string{"/r/a.txt", "/r/sub", "/r/sub", "/r/z.txt"}))

	g.Expect(visits[1].Err).ShouldNot(HaveOccurred())
	g.Expect(visits[2].Err).To(MatchError(filesystem.ErrPermissionDenied))
	g.Expect(visits[2].Attributes).To(BeNil())
	g.Expect(walker.Err()).ShouldNot(HaveOccurred())
}

func TestMockWalk_UnreadableRootIsYieldedWithError(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.FailReadDir("/r", fs.ErrPermission)

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred(), "A root that exists opens even if it cannot be listed")

	visits := collectVisits(t, walker)
	g.Expect(visitPaths(visits)).To(Equal([]string{"/r"}))
	g.Expect(visits[0].Err).To(MatchError(filesystem.ErrPermissionDenied))
	g.Expect(visits[0].Err.Error()).To(Equal("could not read /r: permission denied"))
	g.Expect(walker.Err()).ShouldNot(HaveOccurred())
}

func TestMockWalk_KindWithoutAttributes(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	walker, err := filesystem.OpenTree("/r", sampleTree(), filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	visits := collectVisits(t, walker)
	g.Expect(visits).To(HaveLen(5))

	for _, v := range visits {
		g.Expect(v.Attributes).To(BeNil(), "No attribute payload when attributes are off: %s", v.Path)
	}

	g.Expect(visits[0].Kind).To(Equal(filesystem.KindRegularFile))
	g.Expect(visits[1].Kind).To(Equal(filesystem.KindDirectory))
	g.Expect(visits[3].Kind).To(Equal(filesystem.KindSymbolicLink))
}

func TestMockWalk_UnreadableDirectoryWithAttributes(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.FailReadDir("/r/sub", os.ErrInvalid)

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{Recurse: true, Attributes: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	visits := collectVisits(t, walker)
	g.Expect(visits).To(HaveLen(4))
	g.Expect(visits[2].Err).To(MatchError(filesystem.ErrWalkInternal))
	g.Expect(visits[2].Attributes).NotTo(BeNil())
	g.Expect(visits[2].Attributes.Kind).To(Equal(filesystem.KindDirectory))
}

func TestMockWalk_LostConnectionEndsWalkWithError(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.FailReadDir("/r/sub", sftp.ErrSSHFxConnectionLost)

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(visitPaths(collectVisits(t, walker))).To(Equal([]string{"/r/a.txt", "/r/sub"}))
	g.Expect(walker.Err()).To(MatchError(filesystem.ErrConnectionLost))
	g.Expect(walker.Err()).To(MatchError(filesystem.ErrWalkInternal))

	// The trailing error is reported, the walk stays ended.
	_, ok := walker.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(walker.Close()).To(Succeed())
}

func TestMockWalk_RootStatusFailureFailsOpen(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.FailStat("/r", fs.ErrPermission)

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{})
	g.Expect(walker).To(BeNil())
	g.Expect(err).To(MatchError(filesystem.ErrPermissionDenied))
}

func TestMockWalk_RootFileYieldsNothing(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	walker, err := filesystem.OpenTree("/r/a.txt", sampleTree(), filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	_, ok := walker.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(walker.Err()).ShouldNot(HaveOccurred())
}

func TestMockWalk_PruneNestedDirectoryResumesWithSiblings(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := sampleTree()
	tree.AddFile("/r/sub/inner/c.txt", 1, time.Now())

	walker, err := filesystem.OpenTree("/r", tree, filesystem.WalkOptions{Recurse: true})
	g.Expect(err).ShouldNot(HaveOccurred())

	var paths []string

	for {
		visit, ok := walker.Next()
		if !ok {
			break
		}

		paths = append(paths, visit.Path)
		if visit.Path == "/r/sub/inner" {
			g.Expect(walker.SkipDescendants()).To(BeTrue())
		}
	}

	g.Expect(paths).To(Equal([]string{
		"/r/a.txt", "/r/sub", "/r/sub/b.txt", "/r/sub/inner", "/r/sub/link", "/r/z.txt",
	}))
	g.Expect(tree.ReadDirCalls("/r/sub/inner")).To(Equal(0))
}
