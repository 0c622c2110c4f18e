package prune

import "sync/atomic"

// Stats aggregates the counters of one prune run.
type Stats struct {
	FilesTotal   int64 // Entries visited, including those under removed directories
	FilesRemoved int64
	SizeRemoved  int64 // Bytes
	SizeBefore   int64
	SizeAfter    int64 // SizeBefore - SizeRemoved
}

// counters are bumped concurrently by walk goroutines.
type counters struct {
	filesTotal   atomic.Int64
	filesRemoved atomic.Int64
	sizeRemoved  atomic.Int64
	sizeBefore   atomic.Int64
}

func (c *counters) reset() {
	c.filesTotal.Store(0)
	c.filesRemoved.Store(0)
	c.sizeRemoved.Store(0)
	c.sizeBefore.Store(0)
}

func (c *counters) snapshot() Stats {
	s := Stats{
		FilesTotal:   c.filesTotal.Load(),
		FilesRemoved: c.filesRemoved.Load(),
		SizeRemoved:  c.sizeRemoved.Load(),
		SizeBefore:   c.sizeBefore.Load(),
	}
	s.SizeAfter = s.SizeBefore - s.SizeRemoved
	return s
}
