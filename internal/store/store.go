// Package store persists the session state as a single JSON blob.
//
// The whole [idea.State] is written on every mutation and read once when a
// session opens. Writes are atomic (temp file, then rename) so a crash never
// leaves a half-written blob behind. A missing file is reported as
// [ErrNoState]; an unreadable or undecodable one as [ErrCorrupt]. Callers treat
// both as "start fresh".
//
// Filesystem access goes through afero so tests can use an in-memory fs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"idealauncher/internal/idea"
)

// DefaultFileName is the state file name inside the config directory.
const DefaultFileName = "state.json"

// PathEnv overrides every other state path source when set.
const PathEnv = "IDEALAUNCHER_STATE_PATH"

var (
	// ErrNoState is returned by [Store.Load] when no state has been saved yet.
	ErrNoState = errors.New("no saved state")

	// ErrCorrupt is returned by [Store.Load] when the saved blob can not be
	// decoded.
	ErrCorrupt = errors.New("saved state is corrupt")
)

// ResolvePath decides where the state file lives.
//
// Resolution order:
//  1. IDEALAUNCHER_STATE_PATH environment variable
//  2. configured (e.g. state.path from the config file)
//  3. <dir>/state.json
func ResolvePath(dir, configured string) string {
	if env := os.Getenv(PathEnv); env != "" {
		return env
	}
	if configured != "" {
		return configured
	}
	return filepath.Join(dir, DefaultFileName)
}

// Store reads and writes the state blob.
//
// Create with [New] for the real filesystem or [NewWithFs] for tests.
type Store struct {
	fs   afero.Fs
	path string
}

// New creates a [Store] backed by the OS filesystem.
func New(path string) *Store {
	return NewWithFs(afero.NewOsFs(), path)
}

// NewWithFs creates a [Store] backed by the given filesystem.
func NewWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the saved state. The returned state is not yet
// attached to a blueprint; see [idea.Blueprint.Adopt].
func (s *Store) Load() (*idea.State, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrCorrupt, s.path, err)
	}

	var st idea.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if st.Stages == nil {
		return nil, fmt.Errorf("%w: no stages", ErrCorrupt)
	}

	return &st, nil
}

// Save writes the complete state, replacing whatever was saved before.
func (s *Store) Save(st *idea.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Write to temp, then rename
	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

// Clear removes the saved state. A missing file is not an error.
func (s *Store) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
