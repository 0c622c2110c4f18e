package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/naiplawan/prunemod/internal/manifest"
)

// resolvePatterns expands workspace patterns into package directories.
//
// A pattern containing "*" lists the directory before the first "*" and
// keeps each direct subdirectory holding a package.json; there is no deep
// globbing. Other patterns are direct paths, kept when they hold a
// package.json. Patterns starting with "!" remove earlier matches.
// Missing directories contribute nothing.
func resolvePatterns(root string, patterns []string) []string {
	var (
		packages []string
		negated  []string
	)
	seen := make(map[string]bool)
	add := func(dir string) {
		if seen[dir] {
			return
		}
		seen[dir] = true
		packages = append(packages, dir)
	}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "!") {
			negated = append(negated, strings.TrimPrefix(pattern, "!"))
			continue
		}

		idx := strings.Index(pattern, "*")
		if idx < 0 {
			dir := filepath.Join(root, pattern)
			if manifest.Exists(dir) {
				add(dir)
			}
			continue
		}

		base := filepath.Join(root, pattern[:idx])
		children, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, child := range children {
			if !child.IsDir() {
				continue
			}
			dir := filepath.Join(base, child.Name())
			if manifest.Exists(dir) {
				add(dir)
			}
		}
	}

	if len(negated) == 0 {
		return packages
	}
	kept := packages[:0]
	for _, dir := range packages {
		if !excluded(root, dir, negated) {
			kept = append(kept, dir)
		}
	}
	return kept
}

func excluded(root, dir string, negated []string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range negated {
		pattern = strings.TrimPrefix(strings.TrimSuffix(pattern, "/"), "./")
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
