package output

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/joe/treewalk/internal/walkengine"
	"github.com/joe/treewalk/pkg/errors"
	"github.com/joe/treewalk/pkg/filesystem"
)

// Record types.
const (
	RecordEntry   = "entry"
	RecordSummary = "summary"
)

// EntryRecord is one JSON line for a visited or queried path. Attribute
// fields are omitted when no snapshot was taken.
type EntryRecord struct {
	Type             string   `json:"type"`
	Path             string   `json:"path"`
	Relative         string   `json:"relative,omitempty"`
	Depth            int      `json:"depth,omitempty"`
	Kind             string   `json:"kind"`
	Size             *int64   `json:"size,omitempty"`
	ModificationTime *float64 `json:"modification_time,omitempty"`
	ChangeTime       *float64 `json:"change_time,omitempty"`
	CreationTime     *float64 `json:"creation_time,omitempty"`
	Error            string   `json:"error,omitempty"`
	ErrorCategory    string   `json:"error_category,omitempty"`
}

// SummaryRecord is the last JSON line of a walk.
type SummaryRecord struct {
	Type           string  `json:"type"`
	Entries        int     `json:"entries"`
	Files          int     `json:"files"`
	Directories    int     `json:"directories"`
	Symlinks       int     `json:"symlinks"`
	Other          int     `json:"other"`
	Bytes          int64   `json:"bytes"`
	Pruned         int     `json:"pruned"`
	Errors         int     `json:"errors"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Error          string  `json:"error,omitempty"`
	ErrorCategory  string  `json:"error_category,omitempty"`
}

// JSONRenderer writes one JSON object per line. Failures and the summary go
// to the same stream so the output is self-contained.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer creates a JSON-lines renderer writing to out.
func NewJSONRenderer(out io.Writer) *JSONRenderer {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	return &JSONRenderer{enc: enc}
}

// Entry writes an entry record.
func (r *JSONRenderer) Entry(entry walkengine.Entry) error {
	record := EntryRecord{
		Type:     RecordEntry,
		Path:     entry.Path,
		Relative: entry.Relative,
		Depth:    entry.Depth,
		Kind:     entry.Kind.String(),
	}

	if entry.Attributes != nil {
		withAttributes(&record, *entry.Attributes)
	}

	withError(&record.Error, &record.ErrorCategory, entry.Err)

	return r.encode(record)
}

// Attributes writes an entry record with every attribute field set.
func (r *JSONRenderer) Attributes(path string, attrs filesystem.Attributes) error {
	record := EntryRecord{Type: RecordEntry, Path: path}
	withAttributes(&record, attrs)

	return r.encode(record)
}

// Failure writes an entry record carrying only the path and the error.
func (r *JSONRenderer) Failure(path string, err error) error {
	record := EntryRecord{Type: RecordEntry, Path: path, Kind: filesystem.KindOther.String()}
	withError(&record.Error, &record.ErrorCategory, err)

	return r.encode(record)
}

// Summary writes the summary record.
func (r *JSONRenderer) Summary(stats walkengine.Stats, err error) error {
	record := SummaryRecord{
		Type:           RecordSummary,
		Entries:        stats.Entries(),
		Files:          stats.Files,
		Directories:    stats.Directories,
		Symlinks:       stats.Symlinks,
		Other:          stats.Other,
		Bytes:          stats.Bytes,
		Pruned:         stats.Pruned,
		Errors:         stats.Errors,
		ElapsedSeconds: stats.Elapsed.Seconds(),
	}
	withError(&record.Error, &record.ErrorCategory, err)

	return r.encode(record)
}

func (r *JSONRenderer) encode(v any) error {
	return r.enc.Encode(v) //nolint:wrapcheck // Encoder errors are reported as is
}

func withAttributes(record *EntryRecord, attrs filesystem.Attributes) {
	record.Kind = attrs.Kind.String()
	record.Size = &attrs.Size
	record.ModificationTime = &attrs.ModificationTime
	record.ChangeTime = &attrs.ChangeTime
	record.CreationTime = &attrs.CreationTime
}

func withError(message, category *string, err error) {
	if err == nil {
		return
	}

	*message = err.Error()
	*category = string(errors.CategoryUnknown)

	if enriched, ok := errors.NewEnricher().Enrich(err, "").(errors.ActionableError); ok {
		*category = string(enriched.Category())
	}
}
