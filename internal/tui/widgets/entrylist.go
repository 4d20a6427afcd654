package widgets

import (
	"fmt"
	"strings"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/walkengine"
	"github.com/joe/treewalk/pkg/filesystem"
)

const (
	maxVisibleEntries = 15
	minPathWidth      = 20
	kindColumnWidth   = 16
	sizeColumnWidth   = 10
)

// NewEntryListWidget creates a widget that displays the most recently visited
// entries, newest last. width bounds each line; 0 leaves paths untruncated.
func NewEntryListWidget(getEntries func() []walkengine.Entry, width int) func() string {
	return func() string {
		entries := getEntries()
		if len(entries) == 0 {
			return ""
		}

		startIdx := 0
		if len(entries) > maxVisibleEntries {
			startIdx = len(entries) - maxVisibleEntries
		}

		pathWidth := 0
		if width > 0 {
			pathWidth = max(width-kindColumnWidth-sizeColumnWidth-2, minPathWidth)
		}

		var builder strings.Builder
		for _, entry := range entries[startIdx:] {
			builder.WriteString(renderEntry(entry, pathWidth))
			builder.WriteString("\n")
		}

		return builder.String()
	}
}

func renderEntry(entry walkengine.Entry, pathWidth int) string {
	displayPath := entry.Path
	if pathWidth > 0 {
		displayPath = shared.TruncatePath(displayPath, pathWidth)
	}

	if entry.Err != nil {
		return fmt.Sprintf("%s %s", shared.ErrorSymbol(), shared.FileItemErrorStyle().Render(displayPath))
	}

	kind := fmt.Sprintf("%-*s", kindColumnWidth, entry.Kind)
	size := ""

	if entry.Attributes != nil && entry.Kind == filesystem.KindRegularFile {
		size = shared.FormatBytes(entry.Attributes.Size)
	}

	return fmt.Sprintf("%s%*s  %s",
		shared.KindStyle(entry.Kind).Render(kind),
		sizeColumnWidth, size,
		displayPath)
}
