package prune

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/naiplawan/prunemod/internal/logger"
	"github.com/naiplawan/prunemod/internal/workspace"
)

// DefaultDir is pruned when Options.Dir is empty.
const DefaultDir = "node_modules"

// Default fan-out limits.
const (
	DefaultDirectoryConcurrency = 5
	DefaultStatConcurrency      = 10
	DefaultSizeConcurrency      = 3
	DefaultRemovalConcurrency   = 10
	DefaultManifestCacheSize    = 8192
)

// Options configures one Pruner. Rule overrides (Extensions, Directories,
// Files) replace their defaults when non-nil, even when empty.
type Options struct {
	Dir     string // Dependency directory to prune (default: node_modules)
	Verbose bool
	DryRun  bool

	Exceptions []string // Globs that are never pruned
	Globs      []string // Globs that are always pruned

	Extensions  []string
	Directories []string
	Files       []string

	// Workspace settings
	Workspace     bool
	WorkspaceRoot string // Defaults to Dir
	IncludeRoot   *bool  // Prune the hoisted root node_modules (default: true)

	Experimental Experimental

	// Concurrency settings. Zero means the package default.
	DirectoryConcurrency int
	StatConcurrency      int
	SizeConcurrency      int
	RemovalConcurrency   int
	ManifestCacheSize    int

	// Dependency injection
	Logger   *logger.Logger      // If nil, logs to stdout/stderr
	Remover  Remover             // If nil, removes from the OS filesystem
	Resolver *workspace.Resolver // If nil, a fresh resolver is built per run
}

// Experimental holds opt-in rule extensions.
type Experimental struct {
	DefaultFiles bool // Add ExperimentalFiles to the default file rules
}

// Bool returns a pointer to v, for Options.IncludeRoot.
func Bool(v bool) *bool {
	return &v
}

func (o *Options) setDefaults() {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.IncludeRoot == nil {
		o.IncludeRoot = Bool(true)
	}
	if o.DirectoryConcurrency == 0 {
		o.DirectoryConcurrency = DefaultDirectoryConcurrency
	}
	if o.StatConcurrency == 0 {
		o.StatConcurrency = DefaultStatConcurrency
	}
	if o.SizeConcurrency == 0 {
		o.SizeConcurrency = DefaultSizeConcurrency
	}
	if o.RemovalConcurrency == 0 {
		o.RemovalConcurrency = DefaultRemovalConcurrency
	}
	if o.ManifestCacheSize == 0 {
		o.ManifestCacheSize = DefaultManifestCacheSize
	}
	if o.Logger == nil {
		o.Logger = logger.Default(o.Verbose)
	}
	if o.Remover == nil {
		o.Remover = osRemover{}
	}
}

func (o *Options) validate() error {
	for _, glob := range o.Exceptions {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("%w: exception %q", ErrInvalidPattern, glob)
		}
	}
	for _, glob := range o.Globs {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("%w: include %q", ErrInvalidPattern, glob)
		}
	}

	limits := map[string]int{
		"directory concurrency": o.DirectoryConcurrency,
		"stat concurrency":      o.StatConcurrency,
		"size concurrency":      o.SizeConcurrency,
		"removal concurrency":   o.RemovalConcurrency,
		"manifest cache size":   o.ManifestCacheSize,
	}
	for name, v := range limits {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative (%d)", ErrInvalidConfig, name, v)
		}
	}
	return nil
}
