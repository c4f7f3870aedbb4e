package generator

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteStatus reports what happened to one file during generation.
type WriteStatus string

const (
	Written WriteStatus = "written"
	Skipped WriteStatus = "skipped"
)

// ConfirmFunc asks whether an existing file may be overwritten.
type ConfirmFunc func(name string) bool

// WriteFile writes content to name under dir. When the file already exists
// and force is unset, confirm decides whether to overwrite; a nil confirm
// means never overwrite. Parent directories are created as needed.
func WriteFile(dir, name, content string, force bool, confirm ConfirmFunc) (WriteStatus, error) {
	path := filepath.Join(dir, filepath.FromSlash(name))

	if _, err := os.Stat(path); err == nil && !force {
		if confirm == nil || !confirm(name) {
			return Skipped, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return Written, nil
}
