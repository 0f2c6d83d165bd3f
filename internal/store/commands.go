package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tkrajnik/runkey/internal/models"
)

const commandsFileName = "commands.json"

// CommandStore persists the command list as a single JSON array, at either
// the default location under the data directory or the path configured in
// settings (commands_path, with "~" expanded). The whole file is rewritten on
// every mutation; a mutex keeps concurrent writers from interleaving.
type CommandStore struct {
	dataDir  string
	settings *SettingsStore
	mu       sync.Mutex
}

// NewCommandStore creates a store rooted at dataDir, consulting settings for
// a commands_path override on every access.
func NewCommandStore(dataDir string, settings *SettingsStore) *CommandStore {
	return &CommandStore{dataDir: dataDir, settings: settings}
}

// Path resolves the current location of the command list document.
func (s *CommandStore) Path() (string, error) {
	settings, err := s.settings.Load()
	if err != nil {
		return "", err
	}
	if settings.CommandsPath != nil && *settings.CommandsPath != "" {
		expanded, err := ExpandHome(*settings.CommandsPath)
		if err != nil {
			return "", fmt.Errorf("expand commands path: %w", err)
		}
		return expanded, nil
	}
	return filepath.Join(s.dataDir, commandsFileName), nil
}

// List returns the stored commands in file order. A missing file is an empty
// list, not an error.
func (s *CommandStore) List() ([]models.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *CommandStore) list() ([]models.Command, error) {
	path, err := s.Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []models.Command{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read commands %s: %w", path, err)
	}

	var commands []models.Command
	if err := json.Unmarshal(data, &commands); err != nil {
		return nil, fmt.Errorf("parse commands %s: %w", path, err)
	}
	return commands, nil
}

// Save overwrites the command list document atomically, creating parent
// directories as needed.
func (s *CommandStore) Save(commands []models.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.Path()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write commands %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates the parent directory of the currently configured
// commands path and returns the resolved path. Called after the user points
// commands_path somewhere new.
func (s *CommandStore) EnsureDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.Path()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("create storage directory: %w", err)
	}
	return path, nil
}
