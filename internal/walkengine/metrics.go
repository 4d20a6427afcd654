package walkengine

import (
	"time"

	"github.com/joe/treewalk/pkg/filesystem"
)

// Stats counts what a walk has seen so far. Every visited entry is counted,
// whether or not the include filter reports it.
type Stats struct {
	Files       int
	Directories int
	Symlinks    int
	// Other counts devices, pipes, sockets and entries of unknown type.
	Other int
	// Bytes sums the sizes of regular files. Zero unless attributes are on.
	Bytes int64
	// Errors counts entries that carried a partial failure.
	Errors int
	Pruned int

	StartTime time.Time
	Elapsed   time.Duration
}

// Entries returns the number of entries visited.
func (s Stats) Entries() int {
	return s.Files + s.Directories + s.Symlinks + s.Other
}

// EntriesPerSecond returns the average visit rate, or 0 before any time has passed.
func (s Stats) EntriesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}

	return float64(s.Entries()) / s.Elapsed.Seconds()
}

func (s *Stats) record(visit filesystem.Visit) {
	if visit.Err != nil {
		s.Errors++

		// An unreadable directory was counted on its first visit.
		if visit.Kind == filesystem.KindDirectory {
			return
		}
	}

	switch visit.Kind {
	case filesystem.KindRegularFile:
		s.Files++
		if visit.Attributes != nil {
			s.Bytes += visit.Attributes.Size
		}
	case filesystem.KindDirectory:
		s.Directories++
	case filesystem.KindSymbolicLink:
		s.Symlinks++
	default:
		s.Other++
	}
}
