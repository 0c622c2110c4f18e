package prune

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/naiplawan/prunemod/internal/logger"
	"github.com/naiplawan/prunemod/internal/manifest"
)

// manifestCache answers "is this file its package's main entry". Parsed
// manifests are cached by manifest path; a nil value marks a missing or
// malformed manifest so it is not read again.
type manifestCache struct {
	entries *lru.Cache[string, *manifest.Manifest]
	loads   singleflight.Group
	log     *logger.Logger
}

func newManifestCache(size int, log *logger.Logger) (*manifestCache, error) {
	entries, err := lru.New[string, *manifest.Manifest](size)
	if err != nil {
		return nil, err
	}
	return &manifestCache{entries: entries, log: log}, nil
}

func (c *manifestCache) purge() {
	c.entries.Purge()
}

// load returns the manifest inside dir, or nil when there is none.
func (c *manifestCache) load(dir string) *manifest.Manifest {
	path := filepath.Join(dir, manifest.FileName)
	if m, ok := c.entries.Get(path); ok {
		return m
	}

	v, _, _ := c.loads.Do(path, func() (any, error) {
		if m, ok := c.entries.Get(path); ok {
			return m, nil
		}
		m, err := manifest.Read(path)
		if err != nil {
			if !os.IsNotExist(err) {
				c.log.Debug("Unreadable %s: %v", path, err)
			}
			m = nil
		}
		c.entries.Add(path, m)
		return m, nil
	})
	return v.(*manifest.Manifest)
}

// isMainEntry walks from the file's directory up to the nearest package
// (bounded by root and by node_modules boundaries) and reports whether that
// package declares file as its main entry.
func (c *manifestCache) isMainEntry(root, file string) bool {
	root = filepath.Clean(root)
	dir := filepath.Dir(file)
	for {
		if filepath.Base(dir) == DefaultDir {
			return false
		}
		if m := c.load(dir); m != nil {
			return mainMatches(dir, m.MainEntry(), file)
		}
		if dir == root {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir || !strings.HasPrefix(parent, root) {
			return false
		}
		dir = parent
	}
}

// mainMatches resolves main relative to pkgDir the way Node does for
// extension-less entries and compares it to file.
func mainMatches(pkgDir, main, file string) bool {
	if main == "" {
		return false
	}
	target, err := filepath.Abs(file)
	if err != nil {
		target = filepath.Clean(file)
	}
	base := filepath.Join(pkgDir, main)
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	candidates := []string{
		base,
		base + ".js",
		base + ".json",
		base + ".node",
		filepath.Join(base, "index.js"),
	}
	for _, c := range candidates {
		if c == target {
			return true
		}
	}
	return false
}
