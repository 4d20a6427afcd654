// Package formatters renders sizes, durations and timestamps for humans.
package formatters

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes formats bytes with binary units (e.g., "1.5 MiB"). Negative
// sizes are shown as zero.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	return humanize.IBytes(uint64(bytes))
}

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}

	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// FormatTimestamp formats fractional epoch seconds as UTC RFC 3339.
func FormatTimestamp(seconds float64) string {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))

	return time.Unix(sec, nsec).UTC().Format(time.RFC3339)
}
