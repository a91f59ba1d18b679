package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/entur/oav/internal/specindex"
)

var skipDirs = map[string]bool{
	".git":         true,
	".oav":         true,
	"target":       true,
	"node_modules": true,
	".idea":        true,
	".vscode":      true,
}

var wellKnownNames = []string{"openapi.yaml", "openapi.yml"}

// NormalizeSpecPath resolves spec relative to root (or as-is if absolute),
// verifies it exists and lies within root, and returns the root-relative
// path.
func NormalizeSpecPath(root, spec string) (string, error) {
	if strings.TrimSpace(spec) == "" {
		return "", fmt.Errorf("config: spec path must not be blank")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("config: resolve root %s: %w", root, err)
	}

	candidate := spec
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(absRoot, candidate)
	}
	candidate = filepath.Clean(candidate)

	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("config: spec %s does not exist: %w", spec, err)
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("config: spec %s is outside root %s", spec, root)
	}

	return filepath.ToSlash(rel), nil
}

// DiscoverSpec looks for a well-known OpenAPI file name at root first, then
// walks root (bounded by maxDepth, skipping common non-source directories)
// for any YAML file containing a top-level "openapi" key. Results are
// returned as root-relative, slash-separated, sorted paths.
func DiscoverSpec(root string, maxDepth int) ([]string, error) {
	for _, name := range wellKnownNames {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return []string{name}, nil
		}
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		depth := len(strings.Split(filepath.ToSlash(rel), "/"))

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !isYAML(d.Name()) {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		if specindex.IsOpenAPIDocument(data) {
			found = append(found, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("config: discover spec under %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
