// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     settings
// Description: Settings persistence
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/msto63/transkriptor/internal/jsonutil"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

// DefaultPath returns the per-user settings file location
func DefaultPath() string {
	return filepath.Join(AppDir(), "settings.json")
}

// Store owns the load/save lifecycle of the settings file
type Store struct {
	mu     sync.Mutex
	path   string
	logger *logging.Logger
}

// NewStore creates a store for the given file. An empty path selects DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, logger: logging.New("settings")}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing or unreadable file yields Defaults.
// Keys absent from the file keep their default value.
func (s *Store) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read settings, using defaults", "path", s.path, "error", err)
		}
		return Defaults()
	}

	loaded := Defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("Corrupt settings file, using defaults", "path", s.path, "error", err)
		return Defaults()
	}
	return loaded
}

// Save writes the settings as indented, ASCII-only JSON
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := jsonutil.MarshalIndentASCII(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	s.logger.Debug("Settings saved", "path", s.path)
	return nil
}
