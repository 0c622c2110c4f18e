package prune

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/naiplawan/prunemod/internal/logger"
)

// walker traverses dependency trees and fills the removal queue. Nothing is
// deleted while walking.
//
// The limits are walk-wide: dirReads bounds concurrent directory listings,
// statCalls concurrent Lstat calls and sizeReads the listings made while
// measuring pruned subtrees. workers bounds the goroutines descending into
// subdirectories; when none is free the descent runs inline.
type walker struct {
	classifier *classifier
	queue      *removalQueue
	stats      *counters
	log        *logger.Logger
	verbose    bool
	dryRun     bool

	readDir func(string) ([]os.DirEntry, error)
	lstat   func(string) (os.FileInfo, error)

	dirReads  limiter
	statCalls limiter
	sizeReads limiter
	workers   limiter
}

func (p *Pruner) newWalker() *walker {
	return &walker{
		classifier: &classifier{rules: p.rules, mains: p.manifests},
		queue:      p.queue,
		stats:      &p.stats,
		log:        p.log,
		verbose:    p.opts.Verbose,
		dryRun:     p.opts.DryRun,
		readDir:    os.ReadDir,
		lstat:      os.Lstat,
		dirReads:   newLimiter(p.opts.DirectoryConcurrency),
		statCalls:  newLimiter(p.opts.StatConcurrency),
		sizeReads:  newLimiter(p.opts.SizeConcurrency),
		workers:    newLimiter(p.opts.DirectoryConcurrency),
	}
}

// walk classifies everything under root.
func (w *walker) walk(ctx context.Context, root string) {
	w.walkDir(ctx, root, root)
}

func (w *walker) walkDir(ctx context.Context, root, dir string) {
	if ctx.Err() != nil {
		return
	}

	w.dirReads.acquire()
	children, err := w.readDir(dir)
	w.dirReads.release()
	if err != nil {
		if w.verbose {
			w.log.Error("Error walking directory %s: %v", dir, err)
		}
		return
	}

	var (
		subdirs []string
		files   []string
	)
	for _, child := range children {
		fullPath := filepath.Join(dir, child.Name())
		w.stats.filesTotal.Add(1)

		// Symlinks are never followed; DirEntry.IsDir is false for them.
		if child.IsDir() {
			if w.classifier.shouldPrune(root, fullPath, child.Name(), true) {
				w.pruneDir(ctx, fullPath)
			} else {
				subdirs = append(subdirs, fullPath)
			}
			continue
		}

		if w.classifier.shouldPrune(root, fullPath, child.Name(), false) {
			files = append(files, fullPath)
		}
	}

	if len(files) > 0 {
		w.pruneFiles(ctx, files)
	}

	var wg sync.WaitGroup
	for _, sub := range subdirs {
		if !w.workers.tryAcquire() {
			w.walkDir(ctx, root, sub)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer w.workers.release()
			w.walkDir(ctx, root, sub)
		}()
	}
	wg.Wait()
}

// pruneDir queues a whole directory, counting its subtree up front.
func (w *walker) pruneDir(ctx context.Context, path string) {
	summary := w.measure(ctx, path)
	if !w.queue.push(Candidate{Path: path, IsDir: true, Size: summary.size}) {
		return
	}
	if w.verbose {
		w.log.Info("%sPrune directory: %s", w.prefix(), path)
	}
	w.stats.filesTotal.Add(summary.entries)
	w.stats.filesRemoved.Add(summary.entries)
	w.stats.sizeRemoved.Add(summary.size)
}

// pruneFiles stats and queues files from one directory.
func (w *walker) pruneFiles(ctx context.Context, files []string) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(cap(w.statCalls))
	for _, path := range files {
		g.Go(func() error {
			w.statCalls.acquire()
			info, err := w.lstat(path)
			w.statCalls.release()
			if err != nil {
				// Moved or deleted underneath us
				return nil
			}
			if !w.queue.push(Candidate{Path: path, Size: info.Size()}) {
				return nil
			}
			w.stats.filesRemoved.Add(1)
			w.stats.sizeRemoved.Add(info.Size())
			if w.verbose {
				w.log.Info("%sPrune file: %s", w.prefix(), path)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (w *walker) prefix() string {
	if w.dryRun {
		return "[DRY RUN] "
	}
	return ""
}
