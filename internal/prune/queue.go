package prune

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Candidate is a path that classification decided to remove.
type Candidate struct {
	Path  string
	IsDir bool
	Size  int64
}

// removalQueue is append-only while walking and drained once afterwards.
type removalQueue struct {
	mu    sync.Mutex
	items []Candidate
	seen  map[uint64]struct{}
}

func newRemovalQueue() *removalQueue {
	return &removalQueue{seen: make(map[uint64]struct{})}
}

// push enqueues c unless its path was already queued. It reports whether
// the candidate was added.
func (q *removalQueue) push(c Candidate) bool {
	key := xxhash.Sum64String(c.Path)

	q.mu.Lock()
	defer q.mu.Unlock()
	if _, dup := q.seen[key]; dup {
		return false
	}
	q.seen[key] = struct{}{}
	q.items = append(q.items, c)
	return true
}

// drain returns the queued candidates and empties the queue.
func (q *removalQueue) drain() []Candidate {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	q.seen = make(map[uint64]struct{})
	return items
}

func (q *removalQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
