// Package kaligptdir encapsulates path knowledge for the ~/.kaligpt
// directory that holds the persisted user configuration.
package kaligptdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within a .kaligpt directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory on disk.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Default resolves the per-user directory, ~/.kaligpt.
func Default() (Dir, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dir{}, fmt.Errorf("kaligptdir: resolve home: %w", err)
	}

	return New(filepath.Join(home, ".kaligpt")), nil
}

// Root returns the absolute path to the .kaligpt directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.json") }

// Exists reports whether the root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}

// EnsureStructure creates the root directory if it is missing. It is safe to
// call multiple times (idempotent).
func (d Dir) EnsureStructure() error {
	if err := os.MkdirAll(d.root, 0o750); err != nil {
		return fmt.Errorf("kaligptdir: create root: %w", err)
	}

	return nil
}
