package shared

import (
	"fmt"
	"time"

	"github.com/joe/treewalk/pkg/formatters"
)

// FormatBytes formats bytes into human-readable format (e.g., "1.5 MiB")
func FormatBytes(bytes int64) string {
	return formatters.FormatBytes(bytes)
}

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	return formatters.FormatDuration(duration)
}

// FormatRate formats a visit rate (e.g., "1.2k entries/s")
func FormatRate(entriesPerSec float64) string {
	const thousand = 1000.0
	if entriesPerSec < thousand {
		return fmt.Sprintf("%.0f entries/s", entriesPerSec)
	}

	return fmt.Sprintf("%.1fk entries/s", entriesPerSec/thousand)
}

// TruncatePath shortens a path to maxWidth by eliding its middle.
func TruncatePath(path string, maxWidth int) string {
	const ellipsis = "..."

	runes := []rune(path)
	if maxWidth <= len(ellipsis) || len(runes) <= maxWidth {
		return path
	}

	keep := maxWidth - len(ellipsis)
	head := keep / 2 //nolint:mnd // Half of the kept runes go before the ellipsis
	tail := keep - head

	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
