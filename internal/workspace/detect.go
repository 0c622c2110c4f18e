package workspace

import (
	"os"
	"path/filepath"

	"github.com/naiplawan/prunemod/internal/manifest"
)

// Workspace marker files.
const (
	turboJSON     = "turbo.json"
	lernaJSON     = "lerna.json"
	nxJSON        = "nx.json"
	rushJSON      = "rush.json"
	pnpmYAML      = "pnpm-workspace.yaml"
	pnpmYML       = "pnpm-workspace.yml"
	workspaceJSON = "workspace.json"
	yarnLock      = "yarn.lock"
	bunLockb      = "bun.lockb"
	bunLock       = "bun.lock"
)

// typeMarkers is checked in order; the first present file decides the type.
var typeMarkers = []struct {
	file string
	typ  Type
}{
	{turboJSON, Turbo},
	{lernaJSON, Lerna},
	{nxJSON, Nx},
	{rushJSON, Rush},
	{pnpmYAML, Pnpm},
	{pnpmYML, Pnpm},
}

// findRoot returns the nearest ancestor of directory (inclusive) holding a
// workspace marker. The filesystem root itself is not considered.
func findRoot(directory string) (string, bool) {
	current, err := filepath.Abs(directory)
	if err != nil {
		return "", false
	}
	volumeRoot := filepath.VolumeName(current) + string(filepath.Separator)

	for current != volumeRoot {
		if hasMarker(current) {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", false
}

func hasMarker(dir string) bool {
	for _, m := range typeMarkers {
		if fileExists(filepath.Join(dir, m.file)) {
			return true
		}
	}
	m, err := manifest.ReadDir(dir)
	return err == nil && m.HasWorkspaces()
}

// detectType classifies the workspace at root by marker priority, then by
// the package.json workspaces field and lockfiles.
func detectType(root string) Type {
	for _, m := range typeMarkers {
		if fileExists(filepath.Join(root, m.file)) {
			return m.typ
		}
	}

	m, err := manifest.ReadDir(root)
	if err != nil || !m.HasWorkspaces() {
		return None
	}
	switch {
	case fileExists(filepath.Join(root, yarnLock)):
		return Yarn
	case fileExists(filepath.Join(root, bunLockb)), fileExists(filepath.Join(root, bunLock)):
		return Bun
	}
	return Npm
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
