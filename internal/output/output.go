// Package output renders walk entries, attribute snapshots and the closing
// summary as styled text or JSON lines.
package output

import (
	"fmt"
	"io"

	"github.com/joe/treewalk/internal/config"
	"github.com/joe/treewalk/internal/walkengine"
	"github.com/joe/treewalk/pkg/filesystem"
)

// Renderer writes the results of a command. Entries and attribute records go
// to the main output; failures and the summary may go elsewhere.
type Renderer interface {
	// Entry renders one walk entry. Entries carrying an error are failures.
	Entry(entry walkengine.Entry) error
	// Attributes renders the snapshot of one queried path.
	Attributes(path string, attrs filesystem.Attributes) error
	// Failure renders a path that could not be visited or queried.
	Failure(path string, err error) error
	// Summary renders the closing counters and the fault that ended the walk.
	Summary(stats walkengine.Stats, err error) error
}

// New returns the renderer for format. out receives results; errOut
// receives failures and the summary in text mode.
func New(format config.OutputFormat, out, errOut io.Writer) (Renderer, error) {
	switch format {
	case config.FormatText, "":
		return NewTextRenderer(out, errOut), nil
	case config.FormatJSON:
		return NewJSONRenderer(out), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format) //nolint:err113 // Validation error with actual value
	}
}
