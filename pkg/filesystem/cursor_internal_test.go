//nolint:varnamelen,testpackage // Test files use idiomatic short variable names
package filesystem

import (
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

type rawStep struct {
	path string
	info entryInfo
}

func newSampleTree() *MockTree {
	tree := NewMockTree()
	now := time.Now()

	tree.AddDir("/r", now)
	tree.AddFile("/r/a.txt", 1, now)
	tree.AddDir("/r/sub", now)
	tree.AddFile("/r/sub/b.txt", 2, now)
	tree.AddDir("/r/sub/deep", now)
	tree.AddFile("/r/z.txt", 3, now)

	return tree
}

func drainCursor(c *cursor) []rawStep {
	var steps []rawStep

	for entry := c.read(); entry != nil; entry = c.read() {
		steps = append(steps, rawStep{path: entry.path, info: entry.info})
	}

	return steps
}

func TestCursor_EmitsPostOrderMarkerForEveryDirectory(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	c := newCursor("/r", newSampleTree(), nil)

	g.Expect(drainCursor(c)).To(Equal([]rawStep{
		{"/r", infoDir},
		{"/r/a.txt", infoFile},
		{"/r/sub", infoDir},
		{"/r/sub/b.txt", infoFile},
		{"/r/sub/deep", infoDir},
		{"/r/sub/deep", infoDirPost},
		{"/r/sub", infoDirPost},
		{"/r/z.txt", infoFile},
		{"/r", infoDirPost},
	}))
	g.Expect(c.err).ShouldNot(HaveOccurred())
}

func TestCursor_SkippedDirectoryStillGetsPostOrderMarker(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := newSampleTree()
	c := newCursor("/r", tree, nil)

	var steps []rawStep

	for entry := c.read(); entry != nil; entry = c.read() {
		steps = append(steps, rawStep{path: entry.path, info: entry.info})
		if entry.path == "/r/sub" && entry.info == infoDir {
			g.Expect(c.skip(entry)).To(BeTrue())
		}
	}

	g.Expect(steps).To(Equal([]rawStep{
		{"/r", infoDir},
		{"/r/a.txt", infoFile},
		{"/r/sub", infoDir},
		{"/r/sub", infoDirPost},
		{"/r/z.txt", infoFile},
		{"/r", infoDirPost},
	}))
	g.Expect(tree.ReadDirCalls("/r/sub")).To(Equal(0))
}

func TestCursor_StaleEntryCannotBeSkipped(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	c := newCursor("/r", newSampleTree(), nil)

	c.read()           // /r
	c.read()           // /r/a.txt
	subdir := c.read() // /r/sub
	g.Expect(subdir.info).To(Equal(infoDir))

	c.read() // /r/sub/b.txt

	g.Expect(c.skip(subdir)).To(BeFalse())
	g.Expect(c.read().path).To(Equal("/r/sub/deep"))
}

func TestCursor_PostOrderMarkerCannotBeSkipped(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	c := newCursor("/r", newSampleTree(), nil)

	for entry := c.read(); entry != nil; entry = c.read() {
		if entry.info == infoDirPost {
			g.Expect(c.skip(entry)).To(BeFalse())
		}
	}
}

func TestCursor_UnreadableDirectoryHasNoPostOrderMarker(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	tree := newSampleTree()
	tree.FailReadDir("/r/sub", os.ErrPermission)
	c := newCursor("/r", tree, nil)

	g.Expect(drainCursor(c)).To(Equal([]rawStep{
		{"/r", infoDir},
		{"/r/a.txt", infoFile},
		{"/r/sub", infoDir},
		{"/r/sub", infoDirUnreadable},
		{"/r/z.txt", infoFile},
		{"/r", infoDirPost},
	}))
}

func TestCursor_CloseRunsCloserOnce(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	calls := 0
	c := newCursor("/r", newSampleTree(), func() error {
		calls++
		return nil
	})

	g.Expect(c.close()).To(Succeed())
	g.Expect(c.close()).To(Succeed())
	g.Expect(calls).To(Equal(1))
	g.Expect(c.read()).To(BeNil())
}
