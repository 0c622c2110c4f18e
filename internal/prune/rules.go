package prune

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/naiplawan/prunemod/internal/manifest"
)

// RuleSet decides which entries are superfluous. It is built once per
// Pruner and only read afterwards.
type RuleSet struct {
	directories map[string]bool
	files       map[string]bool
	extensions  map[string]bool
	exceptions  []string
	globs       []string
}

// NewRuleSet builds the rule tables from opts. A non-nil override replaces
// the matching default table rather than extending it.
func NewRuleSet(opts Options) *RuleSet {
	files := opts.Files
	if files == nil {
		files = DefaultFiles
		if opts.Experimental.DefaultFiles {
			files = append(append([]string{}, DefaultFiles...), ExperimentalFiles...)
		}
	}
	directories := opts.Directories
	if directories == nil {
		directories = DefaultDirectories
	}
	extensions := opts.Extensions
	if extensions == nil {
		extensions = DefaultExtensions
	}

	return &RuleSet{
		directories: toSet(directories),
		files:       toSet(files),
		extensions:  toSet(extensions),
		exceptions:  append([]string{}, opts.Exceptions...),
		globs:       append([]string{}, opts.Globs...),
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Match reports whether the entry at path (base name name) should be pruned.
// It performs no I/O.
func (r *RuleSet) Match(path, name string, isDir bool) bool {
	// Never prune package.json files
	if name == manifest.FileName {
		return false
	}

	// Exceptions first so they win over include globs
	if matchAny(r.exceptions, name) {
		return false
	}
	if matchAny(r.globs, name) {
		return true
	}

	if isDir {
		return r.directories[name]
	}

	if r.files[name] || r.files[path] {
		return true
	}
	return r.extensions[filepath.Ext(name)]
}

// HasDirectory, HasFile and HasExtension expose table membership.
func (r *RuleSet) HasDirectory(name string) bool { return r.directories[name] }
func (r *RuleSet) HasFile(name string) bool      { return r.files[name] }
func (r *RuleSet) HasExtension(ext string) bool  { return r.extensions[ext] }

// Directories, Files and Extensions return the table sizes.
func (r *RuleSet) Directories() int { return len(r.directories) }
func (r *RuleSet) Files() int       { return len(r.files) }
func (r *RuleSet) Extensions() int  { return len(r.extensions) }

// Exceptions and Globs return copies of the caller-supplied globs.
func (r *RuleSet) Exceptions() []string { return append([]string{}, r.exceptions...) }
func (r *RuleSet) Globs() []string      { return append([]string{}, r.globs...) }

func matchAny(globs []string, name string) bool {
	for _, glob := range globs {
		// Patterns are validated in Options.validate
		if ok, _ := doublestar.Match(glob, name); ok {
			return true
		}
	}
	return false
}
