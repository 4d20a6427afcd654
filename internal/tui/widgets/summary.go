package widgets

import (
	"fmt"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/walkengine"
)

// NewSummaryWidget creates a widget that displays the walk counters.
// Returns a closure that formats the summary from the stats and error.
func NewSummaryWidget(getStats func() walkengine.Stats, err error) func() string {
	return func() string {
		stats := getStats()

		counts := fmt.Sprintf("Entries: %d (%d files, %d dirs, %d links, %d other)\nSize: %s\nPruned: %d  Errors: %d\nTime elapsed: %s  (%s)",
			stats.Entries(),
			stats.Files,
			stats.Directories,
			stats.Symlinks,
			stats.Other,
			shared.FormatBytes(stats.Bytes),
			stats.Pruned,
			stats.Errors,
			shared.FormatDuration(stats.Elapsed),
			shared.FormatRate(stats.EntriesPerSecond()))

		if err != nil {
			return fmt.Sprintf("Error: %v\n\n%s", err, counts)
		}

		return counts
	}
}
