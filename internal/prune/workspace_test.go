package prune

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naiplawan/prunemod/internal/logger"
	"github.com/naiplawan/prunemod/internal/workspace"
)

// buildWorkspace creates an npm workspace with a hoisted node_modules,
// packages/a (with its own node_modules) and packages/b (without).
func buildWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeJSON(t, filepath.Join(root, "package.json"), map[string]any{
		"name":       "monorepo",
		"workspaces": []string{"packages/*"},
	})
	writeFile(t, filepath.Join(root, "node_modules", "hoisted", "README.md"), "hoisted")
	writeFile(t, filepath.Join(root, "node_modules", "hoisted", "index.js"), "")

	writeJSON(t, filepath.Join(root, "packages", "a", "package.json"), map[string]string{"name": "a"})
	writeFile(t, filepath.Join(root, "packages", "a", "node_modules", "local", "README.md"), "local")
	writeFile(t, filepath.Join(root, "packages", "a", "node_modules", "local", "test", "spec.js"), "")

	writeJSON(t, filepath.Join(root, "packages", "b", "package.json"), map[string]string{"name": "b"})
	return root
}

func TestPruneWorkspace(t *testing.T) {
	root := buildWorkspace(t)
	var out bytes.Buffer

	stats, err := newTestPruner(t, Options{
		Dir:           filepath.Join(root, "node_modules"),
		Workspace:     true,
		WorkspaceRoot: root,
		Logger:        logger.New(&out, &out, false),
	}).Prune(context.Background())
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "node_modules", "hoisted", "README.md"))
	assert.FileExists(t, filepath.Join(root, "node_modules", "hoisted", "index.js"))
	assert.NoFileExists(t, filepath.Join(root, "packages", "a", "node_modules", "local", "README.md"))
	assert.NoDirExists(t, filepath.Join(root, "packages", "a", "node_modules", "local", "test"))
	assert.Equal(t, int64(3), stats.FilesRemoved)
	assert.Contains(t, out.String(), "Detected npm workspace at "+root)

	// Package sources outside node_modules are never walked
	assert.FileExists(t, filepath.Join(root, "packages", "a", "package.json"))
}

func TestPruneWorkspaceWithoutRoot(t *testing.T) {
	root := buildWorkspace(t)

	_, err := newTestPruner(t, Options{
		Workspace:     true,
		WorkspaceRoot: root,
		IncludeRoot:   Bool(false),
	}).Prune(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "node_modules", "hoisted", "README.md"))
	assert.NoFileExists(t, filepath.Join(root, "packages", "a", "node_modules", "local", "README.md"))
}

func TestPruneWorkspaceSizeBefore(t *testing.T) {
	root := buildWorkspace(t)

	stats, err := newTestPruner(t, Options{
		Workspace:     true,
		WorkspaceRoot: root,
		DryRun:        true,
	}).Prune(context.Background())
	require.NoError(t, err)

	// Only the two READMEs carry bytes, one under each root
	assert.Equal(t, int64(len("hoisted")+len("local")), stats.SizeBefore)
	assert.Equal(t, stats.SizeBefore, stats.SizeRemoved)
	assert.Zero(t, stats.SizeAfter)
}

func TestPruneWorkspaceFallback(t *testing.T) {
	dir := t.TempDir()
	nodeModules := filepath.Join(dir, "node_modules")
	writeFile(t, filepath.Join(nodeModules, "dep", "README.md"), "readme")
	var out bytes.Buffer

	resolver := workspace.NewResolver(nil)
	stats, err := newTestPruner(t, Options{
		Dir:       nodeModules,
		Workspace: true,
		Resolver:  resolver,
		Logger:    logger.New(&out, &out, false),
	}).Prune(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.FilesRemoved)
	assert.NoFileExists(t, filepath.Join(nodeModules, "dep", "README.md"))
	assert.Contains(t, out.String(), "falling back to standard pruning")
}

func TestPruneWorkspaceRoots(t *testing.T) {
	root := buildWorkspace(t)
	// A package listed twice resolves to one root
	writeJSON(t, filepath.Join(root, "package.json"), map[string]any{
		"workspaces": []string{"packages/*", "packages/a"},
	})
	require.NoError(t, os.RemoveAll(filepath.Join(root, "node_modules")))

	p := newTestPruner(t, Options{Workspace: true, WorkspaceRoot: root, Verbose: true})
	roots := p.roots(workspace.NewResolver(nil))
	assert.Equal(t, []string{filepath.Join(root, "packages", "a", "node_modules")}, roots)
}
