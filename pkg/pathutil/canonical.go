// Package pathutil resolves the paths lyrebird reports in file records.
package pathutil

import (
	"fmt"
	"path/filepath"
)

// Canonical returns the absolute path of an existing file with every
// symlink resolved, so records name the file the OS actually touched.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}
