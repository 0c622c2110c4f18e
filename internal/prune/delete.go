package prune

import (
	"context"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Remover deletes filesystem entries. Tests swap it for a recorder.
type Remover interface {
	RemoveAll(path string) error
	Remove(path string) error
}

type osRemover struct{}

func (osRemover) RemoveAll(path string) error { return os.RemoveAll(path) }
func (osRemover) Remove(path string) error    { return os.Remove(path) }

// orderForRemoval stable-sorts directories ahead of files.
func orderForRemoval(items []Candidate) []Candidate {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		switch {
		case a.IsDir && !b.IsDir:
			return -1
		case !a.IsDir && b.IsDir:
			return 1
		}
		return 0
	})
	return sorted
}

// removeQueued deletes the candidates: every directory batch finishes before
// the first file batch starts. Per-item failures are logged and skipped.
func (p *Pruner) removeQueued(ctx context.Context, items []Candidate) error {
	if p.opts.DryRun {
		if p.opts.Verbose {
			p.log.Info("[DRY RUN] Would remove %d items", len(items))
		}
		return nil
	}
	if len(items) == 0 {
		return nil
	}

	sorted := orderForRemoval(items)
	split := slices.IndexFunc(sorted, func(c Candidate) bool { return !c.IsDir })
	if split < 0 {
		split = len(sorted)
	}

	if err := p.removeBatches(ctx, sorted[:split]); err != nil {
		return err
	}
	return p.removeBatches(ctx, sorted[split:])
}

func (p *Pruner) removeBatches(ctx context.Context, items []Candidate) error {
	size := p.opts.RemovalConcurrency
	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, len(items))

		var g errgroup.Group
		for _, item := range items[start:end] {
			g.Go(func() error {
				var err error
				if item.IsDir {
					err = p.opts.Remover.RemoveAll(item.Path)
				} else {
					err = p.opts.Remover.Remove(item.Path)
				}
				if err != nil && p.opts.Verbose {
					p.log.Error("Error removing %s: %v", item.Path, err)
				}
				return nil
			})
		}
		_ = g.Wait()
	}
	return nil
}
