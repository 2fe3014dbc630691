// Package configstore persists the user configuration as a single JSON
// document. Saves overwrite the whole file; there are no partial updates.
package configstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/germanamz/kaligpt/pkg/kaligptdir"
	"github.com/germanamz/kaligpt/pkg/providers"
)

// Config is the persisted user configuration.
type Config struct {
	APIKey   string       `json:"api_key"`
	Provider providers.ID `json:"provider"`
	UserName string       `json:"user_name"`
	BotName  string       `json:"bot_name"`
}

// ParseError reports a config file that exists but does not parse as JSON.
// Callers should surface it, then treat the config as absent.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("configstore: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store reads and writes the config file inside a kaligpt directory.
type Store struct {
	dir kaligptdir.Dir
}

// New creates a store over the given directory.
func New(dir kaligptdir.Dir) *Store {
	return &Store{dir: dir}
}

// Default creates a store over the per-user default directory.
func Default() (*Store, error) {
	dir, err := kaligptdir.Default()
	if err != nil {
		return nil, err
	}

	return New(dir), nil
}

// Path returns the config file path.
func (s *Store) Path() string { return s.dir.ConfigPath() }

// Load reads the config file. An absent file yields an error satisfying
// os.IsNotExist / errors.Is(err, os.ErrNotExist); a present but malformed
// file yields a *ParseError.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{Path: s.Path(), Err: err}
	}

	return cfg, nil
}

// Save writes the config as a whole-file overwrite. The write goes to a temp
// file in the same directory first and is moved into place with a rename, so
// a crash mid-save cannot leave a half-written config behind.
func (s *Store) Save(cfg Config) error {
	if err := s.dir.EnsureStructure(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("configstore: marshal: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.Path()), ".config-*.json")
	if err != nil {
		return fmt.Errorf("configstore: create temp: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("configstore: write temp: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("configstore: close temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("configstore: rename: %w", err)
	}

	return nil
}

// Delete removes the config file. Deleting an absent file is not an error.
func (s *Store) Delete() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("configstore: delete: %w", err)
	}

	return nil
}
