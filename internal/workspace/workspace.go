// Package workspace locates monorepo roots and enumerates their packages.
//
// Detection is best effort: unreadable or malformed config files yield no
// packages from that source instead of an error.
package workspace

import (
	"path/filepath"
	"sync"

	"github.com/naiplawan/prunemod/internal/logger"
)

// NodeModules is the dependency directory name inside every package.
const NodeModules = "node_modules"

// Type identifies the tool managing a workspace.
type Type string

const (
	None  Type = "none"
	Npm   Type = "npm"
	Yarn  Type = "yarn"
	Pnpm  Type = "pnpm"
	Lerna Type = "lerna"
	Nx    Type = "nx"
	Rush  Type = "rush"
	Bun   Type = "bun"
	Turbo Type = "turbo"
)

// Info is the result of one detection.
type Info struct {
	Type     Type
	Root     string
	Packages []string // Absolute package directories

	// HoistedNodeModules is Root/node_modules; empty when Type is None.
	HoistedNodeModules string
}

// PackageNodeModules returns the node_modules directory of every package.
func (i *Info) PackageNodeModules() []string {
	dirs := make([]string, 0, len(i.Packages))
	for _, pkg := range i.Packages {
		dirs = append(dirs, filepath.Join(pkg, NodeModules))
	}
	return dirs
}

// Resolver detects workspaces and memoizes results by the queried
// directory. Cached results are never invalidated, so a Resolver should not
// outlive one run over a changing filesystem.
type Resolver struct {
	log   *logger.Logger
	mu    sync.Mutex
	cache map[string]*Info
}

// NewResolver returns an empty Resolver. log may be nil.
func NewResolver(log *logger.Logger) *Resolver {
	return &Resolver{
		log:   log,
		cache: make(map[string]*Info),
	}
}

// Detect walks up from directory to the nearest workspace root and
// enumerates its packages. Repeated calls with the same directory return the
// same *Info.
func (r *Resolver) Detect(directory string) *Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.cache[directory]; ok {
		return info
	}
	info := r.detect(directory)
	r.cache[directory] = info
	return info
}

// ClearCache drops every memoized detection.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*Info)
}

func (r *Resolver) detect(directory string) *Info {
	root, ok := findRoot(directory)
	if !ok {
		return &Info{Type: None, Root: directory, Packages: []string{}}
	}

	typ := detectType(root)
	packages := r.packages(root, typ)
	if packages == nil {
		packages = []string{}
	}
	return &Info{
		Type:               typ,
		Root:               root,
		Packages:           packages,
		HoistedNodeModules: filepath.Join(root, NodeModules),
	}
}
