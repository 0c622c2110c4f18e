package workspace

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// packagesBlock captures the indented "- item" lines after "packages:".
var packagesBlock = regexp.MustCompile(`packages:\s*\n((?:[ \t]+-[ \t]+.+\n?)+)`)

// readPnpmPatterns reads the packages list from pnpm-workspace.yaml or .yml.
// It reports false when neither file yields a list.
func readPnpmPatterns(root string) ([]string, bool) {
	for _, name := range []string{pnpmYAML, pnpmYML} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		if patterns, ok := parsePnpmWorkspace(data); ok {
			return patterns, true
		}
	}
	return nil, false
}

// parsePnpmWorkspace decodes the file as YAML and falls back to scraping
// the "packages:" list line by line when the document does not parse.
func parsePnpmWorkspace(data []byte) ([]string, bool) {
	var doc struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc.Packages, doc.Packages != nil
	}

	m := packagesBlock.FindSubmatch(data)
	if m == nil {
		return nil, false
	}
	var patterns []string
	for _, line := range strings.Split(string(m[1]), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
		item = strings.Trim(item, `'"`)
		if item != "" {
			patterns = append(patterns, item)
		}
	}
	return patterns, len(patterns) > 0
}
