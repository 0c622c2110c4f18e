package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	writeFile(t, path, string(data))
}

// mkPackage creates dir with a package.json named after its base name.
func mkPackage(t *testing.T, dir string) {
	t.Helper()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]string{"name": filepath.Base(dir)})
}

func TestDetectNoWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]string{"name": "simple-project", "version": "1.0.0"})

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, None, info.Type)
	assert.Equal(t, dir, info.Root)
	assert.Empty(t, info.Packages)
	assert.Empty(t, info.HoistedNodeModules)
}

func TestDetectCaches(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]string{"name": "test"})

	r := NewResolver(nil)
	first := r.Detect(dir)
	assert.Same(t, first, r.Detect(dir))

	r.ClearCache()
	assert.NotSame(t, first, r.Detect(dir))
}

func TestDetectNpm(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{
		"name":       "root",
		"workspaces": []string{"packages/*"},
	})
	mkPackage(t, filepath.Join(dir, "packages", "pkg-a"))
	mkPackage(t, filepath.Join(dir, "packages", "pkg-b"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Npm, info.Type)
	assert.Equal(t, dir, info.Root)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "packages", "pkg-a"),
		filepath.Join(dir, "packages", "pkg-b"),
	}, info.Packages)
	assert.Equal(t, filepath.Join(dir, "node_modules"), info.HoistedNodeModules)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "packages", "pkg-a", "node_modules"),
		filepath.Join(dir, "packages", "pkg-b", "node_modules"),
	}, info.PackageNodeModules())
}

func TestDetectWorkspacesObjectForm(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{
		"name":       "root",
		"workspaces": map[string]any{"packages": []string{"packages/*"}},
	})
	mkPackage(t, filepath.Join(dir, "packages", "lib"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Npm, info.Type)
	assert.Equal(t, []string{filepath.Join(dir, "packages", "lib")}, info.Packages)
}

func TestDetectYarnAndBun(t *testing.T) {
	tests := []struct {
		lockfile string
		want     Type
	}{
		{"yarn.lock", Yarn},
		{"bun.lockb", Bun},
		{"bun.lock", Bun},
	}
	for _, tt := range tests {
		t.Run(tt.lockfile, func(t *testing.T) {
			dir := t.TempDir()
			writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{"workspaces": []string{"packages/*"}})
			writeFile(t, filepath.Join(dir, tt.lockfile), "")
			mkPackage(t, filepath.Join(dir, "packages", "a"))

			info := NewResolver(nil).Detect(dir)
			assert.Equal(t, tt.want, info.Type)
			assert.Len(t, info.Packages, 1)
		})
	}
}

func TestDetectPnpm(t *testing.T) {
	for _, name := range []string{"pnpm-workspace.yaml", "pnpm-workspace.yml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, name), "packages:\n  - 'packages/*'\n  - \"tools/cli\"\n")
			mkPackage(t, filepath.Join(dir, "packages", "core"))
			mkPackage(t, filepath.Join(dir, "tools", "cli"))

			info := NewResolver(nil).Detect(dir)
			assert.Equal(t, Pnpm, info.Type)
			assert.ElementsMatch(t, []string{
				filepath.Join(dir, "packages", "core"),
				filepath.Join(dir, "tools", "cli"),
			}, info.Packages)
		})
	}
}

func TestDetectLerna(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "lerna.json"), map[string]any{"packages": []string{"modules/*"}})
	mkPackage(t, filepath.Join(dir, "modules", "one"))
	mkPackage(t, filepath.Join(dir, "packages", "ignored"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Lerna, info.Type)
	assert.Equal(t, []string{filepath.Join(dir, "modules", "one")}, info.Packages)
}

func TestDetectLernaDefaultPattern(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "lerna.json"), map[string]any{"version": "1.0.0"})
	mkPackage(t, filepath.Join(dir, "packages", "one"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Lerna, info.Type)
	assert.Len(t, info.Packages, 1)
}

func TestDetectNxWorkspaceJSON(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "workspace.json"), map[string]any{
		"version": 2,
		"projects": map[string]any{
			"app1": "apps/app1",
			"lib1": map[string]string{"root": "libs/lib1"},
		},
	})
	writeFile(t, filepath.Join(dir, "nx.json"), "{}")
	mkPackage(t, filepath.Join(dir, "apps", "app1"))
	mkPackage(t, filepath.Join(dir, "libs", "lib1"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Nx, info.Type)
	assert.Equal(t, []string{
		filepath.Join(dir, "apps", "app1"),
		filepath.Join(dir, "libs", "lib1"),
	}, info.Packages)
}

func TestDetectNxInferred(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nx.json"), "{}")
	mkPackage(t, filepath.Join(dir, "apps", "web"))
	mkPackage(t, filepath.Join(dir, "libs", "shared"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Nx, info.Type)
	assert.Len(t, info.Packages, 2)
}

func TestDetectTurbo(t *testing.T) {
	t.Run("takes precedence over npm workspaces", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "turbo.json"), `{"pipeline":{}}`)
		writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{"workspaces": []string{"apps/*", "packages/*"}})
		mkPackage(t, filepath.Join(dir, "apps", "web"))
		mkPackage(t, filepath.Join(dir, "packages", "ui"))

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, Turbo, info.Type)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "apps", "web"),
			filepath.Join(dir, "packages", "ui"),
		}, info.Packages)
	})

	t.Run("pnpm workspace file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "turbo.json"), "{}")
		writeJSON(t, filepath.Join(dir, "package.json"), map[string]string{"name": "root"})
		writeFile(t, filepath.Join(dir, "pnpm-workspace.yaml"), "packages:\n  - 'libs/*'\n")
		mkPackage(t, filepath.Join(dir, "libs", "a"))

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, Turbo, info.Type)
		assert.Equal(t, []string{filepath.Join(dir, "libs", "a")}, info.Packages)
	})

	t.Run("conventions", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "turbo.json"), "{}")
		writeJSON(t, filepath.Join(dir, "package.json"), map[string]string{"name": "root"})
		mkPackage(t, filepath.Join(dir, "apps", "docs"))
		mkPackage(t, filepath.Join(dir, "packages", "config"))

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, Turbo, info.Type)
		assert.Len(t, info.Packages, 2)
	})
}

func TestDetectRush(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "rush.json"), map[string]any{
		"rushVersion": "5.0.0",
		"projects": []map[string]string{
			{"packageName": "app", "projectFolder": "apps/app"},
			{"packageName": "lib", "projectFolder": "libraries/lib"},
		},
	})
	mkPackage(t, filepath.Join(dir, "apps", "app"))
	mkPackage(t, filepath.Join(dir, "libraries", "lib"))

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Rush, info.Type)
	assert.Equal(t, []string{
		filepath.Join(dir, "apps", "app"),
		filepath.Join(dir, "libraries", "lib"),
	}, info.Packages)
}

func TestDetectFromNestedDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pnpm-workspace.yaml"), "packages:\n  - packages/*")
	nested := filepath.Join(dir, "packages", "nested", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	info := NewResolver(nil).Detect(nested)
	assert.Equal(t, Pnpm, info.Type)
	assert.Equal(t, dir, info.Root)
}

func TestResolvePatterns(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{
		"workspaces": []string{"packages/*", "apps/*", "specific-package", "packages/*", "!packages/private-*"},
	})
	mkPackage(t, filepath.Join(dir, "packages", "a"))
	mkPackage(t, filepath.Join(dir, "packages", "b"))
	mkPackage(t, filepath.Join(dir, "packages", "private-x"))
	mkPackage(t, filepath.Join(dir, "apps", "web"))
	mkPackage(t, filepath.Join(dir, "specific-package"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "packages", "not-a-package"), 0o755))
	writeFile(t, filepath.Join(dir, "packages", "README.md"), "# packages")

	info := NewResolver(nil).Detect(dir)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "packages", "a"),
		filepath.Join(dir, "packages", "b"),
		filepath.Join(dir, "apps", "web"),
		filepath.Join(dir, "specific-package"),
	}, info.Packages)
}

func TestResolvePatternsMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{
		"workspaces": []string{"non-existent/*", "also-missing"},
	})

	info := NewResolver(nil).Detect(dir)
	assert.Equal(t, Npm, info.Type)
	assert.Empty(t, info.Packages)
}

func TestDetectEdgeCases(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), "{ invalid json")

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, None, info.Type)
	})

	t.Run("empty workspace patterns", func(t *testing.T) {
		dir := t.TempDir()
		writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{"workspaces": []string{}})

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, Npm, info.Type)
		assert.Empty(t, info.Packages)
	})

	t.Run("nested workspaces", func(t *testing.T) {
		dir := t.TempDir()
		writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{"workspaces": []string{"packages/*"}})
		nested := filepath.Join(dir, "packages", "nested")
		writeJSON(t, filepath.Join(nested, "package.json"), map[string]any{
			"name":       "nested",
			"workspaces": []string{"sub-packages/*"},
		})

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, Npm, info.Type)
		assert.Contains(t, info.Packages, nested)
	})

	t.Run("bolt workspaces", func(t *testing.T) {
		dir := t.TempDir()
		writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{
			"bolt": map[string]any{"workspaces": []string{"packages/*"}},
		})
		mkPackage(t, filepath.Join(dir, "packages", "a"))

		info := NewResolver(nil).Detect(dir)
		assert.Equal(t, Npm, info.Type)
		assert.Equal(t, []string{filepath.Join(dir, "packages", "a")}, info.Packages)
	})
}

func TestParsePnpmWorkspaceFallback(t *testing.T) {
	// Tabs make the document invalid YAML; the line scraper still finds the list.
	data := []byte("packages:\n  - 'packages/*'\n  - apps/*\n\tbroken: [\n")
	patterns, ok := parsePnpmWorkspace(data)
	require.True(t, ok)
	assert.Equal(t, []string{"packages/*", "apps/*"}, patterns)

	_, ok = parsePnpmWorkspace([]byte("catalog:\n  react: ^18\n"))
	assert.False(t, ok)
}
