package shared

import (
	"strings"
)

// RenderActivityLog renders a log of walk activity (prunes, failures) under
// an optional title, oldest first. If maxEntries > 0, only the most recent N
// entries are shown.
func RenderActivityLog(title string, entries []string, maxEntries int) string {
	var builder strings.Builder

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle != "" {
		builder.WriteString(RenderLabel(trimmedTitle))
		builder.WriteString("\n")

		if len(entries) > 0 {
			builder.WriteString("\n")
		}
	}

	if len(entries) == 0 {
		return builder.String()
	}

	// maxEntries <= 0 shows everything.
	startIdx := 0
	if maxEntries > 0 && maxEntries < len(entries) {
		startIdx = len(entries) - maxEntries
	}

	for i := startIdx; i < len(entries); i++ {
		builder.WriteString("  ")
		builder.WriteString(entries[i])

		if i < len(entries)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
