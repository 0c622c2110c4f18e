// Package manifest reads the package.json fields the pruner and the
// workspace resolver care about.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the per-package manifest file.
const FileName = "package.json"

// Manifest is the subset of package.json used for pruning decisions.
type Manifest struct {
	Name       string          `json:"name"`
	Main       json.RawMessage `json:"main"`
	Workspaces json.RawMessage `json:"workspaces"`
	Bolt       *struct {
		Workspaces []string `json:"workspaces"`
	} `json:"bolt"`
}

// Read parses the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ReadDir parses the manifest inside dir.
func ReadDir(dir string) (*Manifest, error) {
	return Read(filepath.Join(dir, FileName))
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return &m, nil
}

// Exists reports whether dir contains a manifest file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// MainEntry returns the declared "main" path, or "" when it is missing or
// not a string.
func (m *Manifest) MainEntry() string {
	if m == nil || len(m.Main) == 0 {
		return ""
	}
	var main string
	if err := json.Unmarshal(m.Main, &main); err != nil {
		return ""
	}
	return main
}

// HasWorkspaces reports whether "workspaces" or "bolt.workspaces" is declared
// with a truthy value. An empty array still counts.
func (m *Manifest) HasWorkspaces() bool {
	if m == nil {
		return false
	}
	if m.Bolt != nil && m.Bolt.Workspaces != nil {
		return true
	}
	return truthy(m.Workspaces)
}

// WorkspacePatterns returns the package patterns from the array form
// ("workspaces": [...]), the object form ("workspaces": {"packages": [...]})
// or, failing both, "bolt.workspaces".
func (m *Manifest) WorkspacePatterns() []string {
	if m == nil {
		return nil
	}
	if truthy(m.Workspaces) {
		var list []string
		if err := json.Unmarshal(m.Workspaces, &list); err == nil {
			return list
		}
		var obj struct {
			Packages []string `json:"packages"`
		}
		if err := json.Unmarshal(m.Workspaces, &obj); err == nil {
			return obj.Packages
		}
		return nil
	}
	if m.Bolt != nil {
		return m.Bolt.Workspaces
	}
	return nil
}

func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`, "0":
		return false
	}
	return true
}
