package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tkrajnik/runkey/internal/models"
)

const settingsFileName = "config.json"

// SettingsStore persists the process-wide settings document. Access to the
// backing file is serialized by a single mutex; callers read-modify-write the
// whole document, there are no partial merges.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

// NewSettingsStore creates a store backed by <dataDir>/config.json.
func NewSettingsStore(dataDir string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dataDir, settingsFileName)}
}

// Path returns the location of the settings document.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings document. A missing file yields the defaults
// (safe mode off, no overrides); any other failure is surfaced.
func (s *SettingsStore) Load() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("read settings %s: %w", s.path, err)
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return settings, nil
}

// Save replaces the settings document on disk.
func (s *SettingsStore) Save(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}
