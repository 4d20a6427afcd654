package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joe/treewalk/internal/tui/shared"
	"github.com/joe/treewalk/internal/util"
	"github.com/joe/treewalk/internal/walkengine"
	"github.com/joe/treewalk/pkg/errors"
	"github.com/joe/treewalk/pkg/filesystem"
	"github.com/joe/treewalk/pkg/formatters"
)

const (
	kindWidth = 16
	sizeWidth = 10
)

// TextRenderer writes one line per entry. Colour is used only when the
// writer is a terminal.
type TextRenderer struct {
	out    io.Writer
	errOut io.Writer

	// Styled colours kinds and errors.
	Styled bool
	// Suggestions prints actionable hints under every failure.
	Suggestions bool

	enricher errors.Enricher
}

// NewTextRenderer creates a text renderer. Styling follows whether out is a
// terminal.
func NewTextRenderer(out, errOut io.Writer) *TextRenderer {
	return &TextRenderer{
		out:      out,
		errOut:   errOut,
		Styled:   util.IsTerminal(out),
		enricher: errors.NewEnricher(),
	}
}

// Entry writes "kind size mtime path", or just the path when the walk
// carries no attributes.
func (r *TextRenderer) Entry(entry walkengine.Entry) error {
	if entry.Err != nil {
		return r.Failure(entry.Path, entry.Err)
	}

	if entry.Attributes == nil {
		_, err := fmt.Fprintln(r.out, entry.Path)
		return err //nolint:wrapcheck // Write errors are reported as is
	}

	attrs := entry.Attributes

	_, err := fmt.Fprintf(r.out, "%s %*s  %s  %s\n",
		r.kind(attrs.Kind),
		sizeWidth, formatters.FormatBytes(attrs.Size),
		formatters.FormatTimestamp(attrs.ModificationTime),
		entry.Path)

	return err //nolint:wrapcheck // Write errors are reported as is
}

// Attributes writes the full snapshot of path as an indented block.
func (r *TextRenderer) Attributes(path string, attrs filesystem.Attributes) error {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s\n", path)
	fmt.Fprintf(&builder, "  kind:     %s\n", r.style(shared.KindStyle(attrs.Kind), attrs.Kind.String()))
	fmt.Fprintf(&builder, "  size:     %d (%s)\n", attrs.Size, formatters.FormatBytes(attrs.Size))
	fmt.Fprintf(&builder, "  modified: %s\n", formatters.FormatTimestamp(attrs.ModificationTime))
	fmt.Fprintf(&builder, "  changed:  %s\n", formatters.FormatTimestamp(attrs.ChangeTime))
	fmt.Fprintf(&builder, "  created:  %s\n", formatters.FormatTimestamp(attrs.CreationTime))

	_, err := io.WriteString(r.out, builder.String())

	return err //nolint:wrapcheck // Write errors are reported as is
}

// Failure writes the enriched error to the error stream.
func (r *TextRenderer) Failure(path string, err error) error {
	enriched := r.enricher.Enrich(err, path)

	_, writeErr := fmt.Fprintf(r.errOut, "%s %s\n", r.style(shared.ErrorStyle(), "error:"), enriched.Error())
	if writeErr != nil || !r.Suggestions {
		return writeErr //nolint:wrapcheck // Write errors are reported as is
	}

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		_, writeErr = fmt.Fprintln(r.errOut, suggestions)
	}

	return writeErr //nolint:wrapcheck // Write errors are reported as is
}

// Summary writes one line of counters to the error stream, followed by the
// fault that ended the walk, if any.
func (r *TextRenderer) Summary(stats walkengine.Stats, err error) error {
	line := fmt.Sprintf("%d entries (%d files, %d directories, %d symlinks, %d other), %s",
		stats.Entries(), stats.Files, stats.Directories, stats.Symlinks, stats.Other,
		formatters.FormatBytes(stats.Bytes))

	if stats.Pruned > 0 {
		line += fmt.Sprintf(", %d pruned", stats.Pruned)
	}

	if stats.Errors > 0 {
		line += ", " + r.style(shared.WarningStyle(), fmt.Sprintf("%d errors", stats.Errors))
	}

	line += " in " + formatters.FormatDuration(stats.Elapsed)

	if _, writeErr := fmt.Fprintln(r.errOut, r.style(shared.DimStyle(), line)); writeErr != nil {
		return writeErr //nolint:wrapcheck // Write errors are reported as is
	}

	if err == nil {
		return nil
	}

	saved := r.Suggestions
	r.Suggestions = true

	defer func() { r.Suggestions = saved }()

	return r.Failure("", err)
}

func (r *TextRenderer) kind(kind filesystem.EntryKind) string {
	return r.style(shared.KindStyle(kind), fmt.Sprintf("%-*s", kindWidth, kind))
}

func (r *TextRenderer) style(style lipgloss.Style, text string) string {
	if !r.Styled {
		return text
	}

	return style.Render(text)
}
