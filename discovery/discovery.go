// Package discovery locates annotation set files on disk and watches
// them for changes. File retrieval over the network is out of scope;
// discovery operates on local paths only.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches annotation set files anywhere under the
// search root.
const DefaultPattern = "**/*.belanno"

// ResolveFiles expands glob patterns to concrete annotation files.
// Supports both single-level wildcards (*) and recursive wildcards (**).
//
// Examples:
//   - "annotations/*.belanno" → files directly under annotations/
//   - "**/*.belanno"          → all annotation files recursively
//   - "disease.belanno"       → the file itself
//
// Results are deduplicated and sorted. Returns only regular files.
func ResolveFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	sort.Strings(resolved)
	return resolved, nil
}

// resolvePattern expands a single pattern to regular files.
func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		abs, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory, not a file: %s", abs)
		}
		return []string{abs}, nil
	}

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(abs)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			files = append(files, match)
		}
	}
	return files, nil
}

// containsGlob reports whether the pattern carries glob metacharacters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
