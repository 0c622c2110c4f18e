package prune

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// dirSummary is the aggregate of one subtree.
type dirSummary struct {
	entries int64 // Every file and directory below the root
	size    int64 // Sum of file sizes
}

// measure walks the subtree under root level by level. Listings go through
// the walk-wide sizeReads limiter. Unreadable directories and files
// contribute nothing.
func (w *walker) measure(ctx context.Context, root string) dirSummary {
	var entries, size atomic.Int64

	level := []string{root}
	for len(level) > 0 {
		if ctx.Err() != nil {
			break
		}

		var (
			mu   sync.Mutex
			next []string
		)
		var g errgroup.Group
		g.SetLimit(cap(w.sizeReads))
		for _, dir := range level {
			g.Go(func() error {
				w.sizeReads.acquire()
				children, err := w.readDir(dir)
				w.sizeReads.release()
				if err != nil {
					return nil
				}
				var subdirs []string
				var local int64
				for _, child := range children {
					entries.Add(1)
					fullPath := filepath.Join(dir, child.Name())
					if child.IsDir() {
						subdirs = append(subdirs, fullPath)
						continue
					}
					info, err := child.Info()
					if err != nil {
						continue
					}
					local += info.Size()
				}
				size.Add(local)
				if len(subdirs) > 0 {
					mu.Lock()
					next = append(next, subdirs...)
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()
		level = next
	}

	return dirSummary{entries: entries.Load(), size: size.Load()}
}

// measureAll sums the file sizes of every root.
func (w *walker) measureAll(ctx context.Context, roots []string) int64 {
	var total atomic.Int64
	var g errgroup.Group
	g.SetLimit(cap(w.sizeReads))
	for _, root := range roots {
		g.Go(func() error {
			total.Add(w.measure(ctx, root).size)
			return nil
		})
	}
	_ = g.Wait()
	return total.Load()
}
