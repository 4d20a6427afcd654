// Package walkengine drives a filesystem walk and applies walk policy:
// prune patterns, a depth limit, an include filter, statistics and events.
package walkengine

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joe/treewalk/internal/util"
	"github.com/joe/treewalk/pkg/filesystem"
)

// Options configures an Engine.
type Options struct {
	Walk filesystem.WalkOptions
	// Prune lists globs; matching directories are visited but not descended into.
	Prune []string
	// Include is a glob limiting which entries are reported. Empty reports all.
	Include string
	// MaxDepth stops descent below this depth (1 = the root's children). 0 is unlimited.
	MaxDepth int
}

// Entry is one reported visit, enriched with its position under the root.
type Entry struct {
	filesystem.Visit

	// Relative is the path below the root, using forward slashes.
	Relative string
	// Depth is 1 for the root's children.
	Depth int
}

// Engine pulls entries from a TreeScanner one at a time. Like the scanner it
// wraps, an Engine must be used by one goroutine at a time.
type Engine struct {
	Root         string
	Options      Options
	TimeProvider TimeProvider

	scanner filesystem.TreeScanner
	emitter EventEmitter
	filter  EntryFilter
	pruner  *PruneMatcher
	logger  zerolog.Logger

	walkID  uuid.UUID
	stats   Stats
	last    string
	started bool
	done    bool
	err     error
}

// NewEngine opens location (a local path or an sftp:// URL) and returns an
// engine ready to walk it.
func NewEngine(location string, opts Options) (*Engine, error) {
	if pattern, ok := ValidatePatterns(append([]string{opts.Include}, opts.Prune...)...); !ok {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern) //nolint:err113 // Validation error with actual value
	}

	loc, err := filesystem.ParseLocation(location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location: %w", err)
	}

	walker, err := filesystem.OpenLocation(location, opts.Walk)
	if err != nil {
		return nil, err //nolint:wrapcheck // PathError already names the root
	}

	return NewEngineWithScanner(loc.Path, walker, opts), nil
}

// NewEngineWithScanner wraps an already open scanner rooted at root.
func NewEngineWithScanner(root string, scanner filesystem.TreeScanner, opts Options) *Engine {
	return &Engine{
		Root:         root,
		Options:      opts,
		TimeProvider: &RealTimeProvider{},
		scanner:      scanner,
		filter:       NewGlobFilter(opts.Include),
		pruner:       NewPruneMatcher(opts.Prune),
		logger:       util.GetLogger("walkengine"),
		walkID:       uuid.New(),
	}
}

// SetEventEmitter sets the event emitter.
// The emitter is optional - if nil, no events will be emitted.
func (e *Engine) SetEventEmitter(emitter EventEmitter) {
	e.emitter = emitter
}

// GetEventEmitter returns the current event emitter.
func (e *Engine) GetEventEmitter() EventEmitter {
	return e.emitter
}

// WalkID identifies this walk in events and logs.
func (e *Engine) WalkID() uuid.UUID {
	return e.walkID
}

// Stats returns a copy of the counters so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Err returns what ended the walk early: a walk fault, a cancellation or the
// error of Run's callback. It is nil after a complete walk.
func (e *Engine) Err() error {
	return e.err
}

// Done reports whether the walk has ended.
func (e *Engine) Done() bool {
	return e.done
}

// Step returns the next reported entry. Entries hidden by the include filter
// are skipped over, except those carrying an error. It returns false once the
// walk has ended.
func (e *Engine) Step() (Entry, bool) {
	if e.done {
		return Entry{}, false
	}

	e.start()

	for {
		visit, ok := e.scanner.Next()
		if !ok {
			e.complete(e.scanner.Err())
			return Entry{}, false
		}

		entry := e.entryFor(visit)
		e.last = visit.Path

		e.stats.record(visit)
		e.autoPrune(entry)

		if visit.Err != nil {
			e.logger.Debug().Str("path", visit.Path).Err(visit.Err).Msg("entry failed")
			e.emit(EntryFailed{Path: visit.Path, Err: visit.Err})

			return entry, true
		}

		if e.filter.ShouldInclude(entry.Relative) {
			e.emit(EntryVisited{Entry: entry})
			return entry, true
		}
	}
}

// Prune skips the descendants of the entry most recently returned by Step.
// It reports whether anything was pruned.
func (e *Engine) Prune() bool {
	if e.done || !e.scanner.SkipDescendants() {
		return false
	}

	e.stats.Pruned++
	e.emit(SubtreePruned{Path: e.last, Reason: ReasonManual})
	e.logger.Debug().Str("path", e.last).Str("reason", ReasonManual).Msg("subtree pruned")

	return true
}

// Run steps through the whole walk, calling fn for every reported entry. It
// stops early when ctx is cancelled or fn fails, and always closes the walk.
// The returned error is fn's, else the context's, else the walk fault; the
// WalkComplete event carries the same error.
func (e *Engine) Run(ctx context.Context, fn func(Entry) error) error {
	defer func() {
		_ = e.Close()
	}()

	for {
		if err := ctx.Err(); err != nil {
			cancelled := fmt.Errorf("walk cancelled: %w", err)
			e.complete(cancelled)

			return cancelled
		}

		entry, ok := e.Step()
		if !ok {
			return e.err
		}

		if err := fn(entry); err != nil {
			e.complete(err)
			return err
		}
	}
}

// Close releases the walk. Safe to call more than once.
func (e *Engine) Close() error {
	err := e.scanner.Close()
	if err != nil {
		return fmt.Errorf("failed to close walk of %s: %w", e.Root, err)
	}

	return nil
}

func (e *Engine) start() {
	if e.started {
		return
	}

	e.started = true
	e.stats.StartTime = e.TimeProvider.Now()
	e.emit(WalkStarted{WalkID: e.walkID, Root: e.Root})
	e.logger.Debug().Str("walk_id", e.walkID.String()).Str("root", e.Root).Msg("walk started")
}

func (e *Engine) complete(err error) {
	if e.done {
		return
	}

	e.start()

	e.done = true
	e.err = err
	e.stats.Elapsed = e.TimeProvider.Now().Sub(e.stats.StartTime)

	e.emit(WalkComplete{WalkID: e.walkID, Stats: e.stats, Err: err})

	// Callers report the outcome; the log only traces it.
	e.logger.Debug().Err(err).Str("walk_id", e.walkID.String()).
		Int("entries", e.stats.Entries()).
		Int("errors", e.stats.Errors).
		Int("pruned", e.stats.Pruned).
		Dur("elapsed", e.stats.Elapsed).
		Msg("walk complete")
}

// autoPrune applies the prune patterns and the depth limit to a directory.
func (e *Engine) autoPrune(entry Entry) {
	if !e.Options.Walk.Recurse || entry.Kind != filesystem.KindDirectory || entry.Err != nil {
		return
	}

	reason := ""

	switch {
	case e.Options.MaxDepth > 0 && entry.Depth >= e.Options.MaxDepth:
		reason = ReasonMaxDepth
	case e.pruner.Matches(entry.Relative):
		reason = ReasonPattern
	default:
		return
	}

	if !e.scanner.SkipDescendants() {
		return
	}

	e.stats.Pruned++
	e.emit(SubtreePruned{Path: entry.Path, Reason: reason})
	e.logger.Debug().Str("path", entry.Path).Str("reason", reason).Msg("subtree pruned")
}

func (e *Engine) entryFor(visit filesystem.Visit) Entry {
	rel := relativePath(e.Root, visit.Path)

	return Entry{
		Visit:    visit,
		Relative: rel,
		Depth:    strings.Count(rel, "/") + 1,
	}
}

func (e *Engine) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

// relativePath strips root from p. Both use the separator of the tree that
// produced them; the result always uses forward slashes.
func relativePath(root, p string) string {
	p = filepath.ToSlash(p)
	root = path.Clean(filepath.ToSlash(root))

	if root == "." {
		return strings.TrimPrefix(p, "./")
	}

	rel := strings.TrimPrefix(p, root)

	return strings.TrimLeft(rel, "/")
}
