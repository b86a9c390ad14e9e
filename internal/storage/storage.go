// internal/storage/storage.go
//
// Durable client storage: small named JSON documents under
// .crumbline/state/. Holds the serialized session and lightweight UI
// preferences; read at startup, written on every change, cleared on
// logout.

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound reports that no value is stored under the requested key.
var ErrNotFound = errors.New("storage: key not found")

// Well-known keys.
const (
	KeySession     = "session"
	KeyPreferences = "preferences"
)

// Store reads and writes named JSON documents in a single directory.
type Store struct {
	dir string
}

// New creates the backing directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Read unmarshals the document stored under key into v.
func (s *Store) Read(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return nil
}

// Write marshals v and replaces the document stored under key. The
// write goes through a temp file and rename so a crash mid-write never
// leaves a torn session behind.
func (s *Store) Write(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("storage: replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the document under key. Deleting a missing key is not
// an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	name := strings.TrimSpace(key)
	return filepath.Join(s.dir, name+".json")
}

// Preferences is the settings blob persisted from the Settings section.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Newsletter    bool   `json:"newsletter"`
}

// DefaultPreferences matches a first run.
func DefaultPreferences() Preferences {
	return Preferences{Theme: "light", Notifications: true}
}

// LoadPreferences reads stored preferences, falling back to defaults
// when nothing is stored yet.
func LoadPreferences(s *Store) Preferences {
	prefs := DefaultPreferences()
	if err := s.Read(KeyPreferences, &prefs); err != nil {
		return DefaultPreferences()
	}
	if prefs.Theme != "light" && prefs.Theme != "dark" {
		prefs.Theme = "light"
	}
	return prefs
}
