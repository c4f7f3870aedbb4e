// Package scanner walks project directories and reads project files.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidPath is returned when the scan root does not exist or is not a directory.
var ErrInvalidPath = errors.New("invalid project path")

// ignoredDirs are pruned from traversal entirely. Their contents never
// appear in scan results.
var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".netlify":     true,
	"venv":         true,
	".venv":        true,
}

// Scan returns every regular file beneath root as a slash-separated path
// relative to root, in directory-walk order.
func Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidPath, root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && ignoredDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return files, nil
}

// FindFile locates a file by name inside root. It tries the direct path
// first (name may itself be a relative path), then searches the tree with
// the same directory pruning as Scan. Returns the absolute path.
func FindFile(root, name string) (string, bool) {
	direct := filepath.Join(root, filepath.FromSlash(name))
	if info, err := os.Stat(direct); err == nil && info.Mode().IsRegular() {
		return direct, true
	}

	var found string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && ignoredDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})

	return found, found != ""
}

// ReadTextFile reads a file and returns its content, rejecting binary data.
// Used for display paths where a read failure must surface explicitly.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) || strings.ContainsRune(string(data), '\x00') {
		return "", fmt.Errorf("cannot read binary file: %s", path)
	}
	return string(data), nil
}

// ReadLowercase is the best-effort read used during content inference.
// Any failure, including binary content, yields ok=false and no signal.
func ReadLowercase(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if strings.ContainsRune(string(data), '\x00') {
		return "", false
	}
	return strings.ToLower(string(data)), true
}
