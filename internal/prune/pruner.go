// Package prune removes superfluous files (tests, docs, configs, build
// artifacts) from installed dependency trees.
//
// A run has two phases. The walk classifies every entry and queues the ones
// to remove, never deleting in place. Once every root has been walked, the
// queue is drained: directories first, then files, in bounded batches.
package prune

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/naiplawan/prunemod/internal/logger"
	"github.com/naiplawan/prunemod/internal/workspace"
)

// Pruner runs prune operations. Runs on the same Pruner are serialized.
type Pruner struct {
	opts      Options
	rules     *RuleSet
	log       *logger.Logger
	manifests *manifestCache
	queue     *removalQueue
	stats     counters
	mu        sync.Mutex
}

// New validates opts and builds a Pruner.
func New(opts Options) (*Pruner, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	manifests, err := newManifestCache(opts.ManifestCacheSize, opts.Logger)
	if err != nil {
		return nil, err
	}

	return &Pruner{
		opts:      opts,
		rules:     NewRuleSet(opts),
		log:       opts.Logger,
		manifests: manifests,
		queue:     newRemovalQueue(),
	}, nil
}

// Rules returns the rule tables in effect.
func (p *Pruner) Rules() *RuleSet {
	return p.rules
}

// Dir returns the dependency directory this Pruner targets.
func (p *Pruner) Dir() string {
	return p.opts.Dir
}

// Progress returns the counters of the run in flight (or the last one).
func (p *Pruner) Progress() Stats {
	return p.stats.snapshot()
}

// Prune walks every configured root, then removes what was queued. Entry
// level failures never abort the run; the only error is ctx's, returned with
// the partial stats.
func (p *Pruner) Prune(ctx context.Context) (Stats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.reset()
	p.manifests.purge()
	p.queue.drain()
	defer func() {
		// Release per-run memory
		p.manifests.purge()
		p.queue.drain()
	}()

	resolver := p.opts.Resolver
	if resolver == nil {
		resolver = workspace.NewResolver(p.log)
	}
	roots := p.roots(resolver)

	w := p.newWalker()
	p.stats.sizeBefore.Store(w.measureAll(ctx, roots))

	for _, root := range roots {
		w.walk(ctx, root)
	}
	if err := ctx.Err(); err != nil {
		return p.stats.snapshot(), err
	}

	err := p.removeQueued(ctx, p.queue.drain())
	return p.stats.snapshot(), err
}

// roots lists the directories to walk: the configured directory, or in
// workspace mode the hoisted root node_modules and each package's own.
func (p *Pruner) roots(resolver *workspace.Resolver) []string {
	if !p.opts.Workspace {
		return []string{p.opts.Dir}
	}

	start := p.opts.WorkspaceRoot
	if start == "" {
		start = p.opts.Dir
	}
	info := resolver.Detect(start)
	if info.Type == workspace.None {
		p.log.Info("No workspace configuration detected, falling back to standard pruning")
		return []string{p.opts.Dir}
	}

	p.log.Info("Detected %s workspace at %s", info.Type, info.Root)
	if p.opts.Verbose {
		p.log.Info("Found %d workspace packages", len(info.Packages))
	}

	var roots []string
	seen := make(map[string]bool)
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if seen[dir] {
			return
		}
		seen[dir] = true
		roots = append(roots, dir)
	}

	if *p.opts.IncludeRoot && info.HoistedNodeModules != "" {
		if isDir(info.HoistedNodeModules) {
			if p.opts.Verbose {
				p.log.Info("Pruning root node_modules at %s", info.HoistedNodeModules)
			}
			add(info.HoistedNodeModules)
		} else if p.opts.Verbose {
			p.log.Info("Root node_modules not found at %s", info.HoistedNodeModules)
		}
	}

	for i, nodeModules := range info.PackageNodeModules() {
		if !isDir(nodeModules) {
			if p.opts.Verbose {
				p.log.Info("No node_modules found in package at %s", info.Packages[i])
			}
			continue
		}
		if p.opts.Verbose {
			p.log.Info("Pruning package node_modules at %s", nodeModules)
		}
		add(nodeModules)
	}
	return roots
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
