package workspace

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/naiplawan/prunemod/internal/manifest"
)

var (
	nxConventions    = []string{"apps/*", "libs/*", "packages/*"}
	turboConventions = []string{"apps/*", "packages/*"}
	lernaDefault     = []string{"packages/*"}
)

// packages enumerates the package directories of a detected workspace.
func (r *Resolver) packages(root string, typ Type) []string {
	switch typ {
	case Npm, Yarn, Bun:
		return r.npmPackages(root)
	case Pnpm:
		return r.pnpmPackages(root)
	case Lerna:
		return r.lernaPackages(root)
	case Nx:
		return r.nxPackages(root)
	case Rush:
		return r.rushPackages(root)
	case Turbo:
		return r.turboPackages(root)
	}
	return nil
}

func (r *Resolver) npmPackages(root string) []string {
	m, err := manifest.ReadDir(root)
	if err != nil {
		r.log.Error("Error reading npm/yarn workspaces: %v", err)
		return nil
	}
	return resolvePatterns(root, m.WorkspacePatterns())
}

func (r *Resolver) pnpmPackages(root string) []string {
	patterns, ok := readPnpmPatterns(root)
	if !ok {
		return nil
	}
	return resolvePatterns(root, patterns)
}

func (r *Resolver) lernaPackages(root string) []string {
	var cfg struct {
		Packages []string `json:"packages"`
	}
	if err := readJSON(filepath.Join(root, lernaJSON), &cfg); err != nil {
		r.log.Error("Error reading lerna workspaces: %v", err)
		return nil
	}
	patterns := cfg.Packages
	if patterns == nil {
		patterns = lernaDefault
	}
	return resolvePatterns(root, patterns)
}

// nxPackages prefers the explicit workspace.json project map and falls back
// to the apps/libs/packages convention when only nx.json exists.
func (r *Resolver) nxPackages(root string) []string {
	var cfg struct {
		Projects map[string]json.RawMessage `json:"projects"`
	}
	if err := readJSON(filepath.Join(root, workspaceJSON), &cfg); err == nil && cfg.Projects != nil {
		names := slices.Sorted(maps.Keys(cfg.Projects))
		var packages []string
		for _, name := range names {
			if dir := nxProjectRoot(cfg.Projects[name]); dir != "" {
				packages = append(packages, filepath.Join(root, dir))
			}
		}
		return packages
	}

	if fileExists(filepath.Join(root, nxJSON)) {
		return resolvePatterns(root, nxConventions)
	}
	return nil
}

// nxProjectRoot accepts both "apps/web" and {"root": "apps/web"}.
func nxProjectRoot(raw json.RawMessage) string {
	var dir string
	if err := json.Unmarshal(raw, &dir); err == nil {
		return dir
	}
	var obj struct {
		Root string `json:"root"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Root
	}
	return ""
}

func (r *Resolver) rushPackages(root string) []string {
	var cfg struct {
		Projects []struct {
			PackageName   string `json:"packageName"`
			ProjectFolder string `json:"projectFolder"`
		} `json:"projects"`
	}
	if err := readJSON(filepath.Join(root, rushJSON), &cfg); err != nil {
		r.log.Error("Error reading rush workspaces: %v", err)
		return nil
	}
	var packages []string
	for _, p := range cfg.Projects {
		if p.ProjectFolder == "" {
			continue
		}
		packages = append(packages, filepath.Join(root, p.ProjectFolder))
	}
	return packages
}

// turboPackages defers to the underlying package manager: package.json
// workspaces, then pnpm-workspace files, then the apps/packages convention.
func (r *Resolver) turboPackages(root string) []string {
	m, err := manifest.ReadDir(root)
	if err != nil {
		r.log.Error("Error reading turbo workspaces: %v", err)
		return resolvePatterns(root, turboConventions)
	}
	if m.HasWorkspaces() {
		return resolvePatterns(root, m.WorkspacePatterns())
	}
	if packages := r.pnpmPackages(root); len(packages) > 0 {
		return packages
	}
	return resolvePatterns(root, turboConventions)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
