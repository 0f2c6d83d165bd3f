// Package services provides the command CRUD, execution, termination, and
// run-history logic behind the HTTP layer.
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/store"
	"github.com/tkrajnik/runkey/internal/validation"
)

var (
	// ErrCommandNotFound indicates the requested command id is not stored.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandExists indicates an add used an id that is already taken.
	ErrCommandExists = errors.New("command already exists")
	// ErrSafeModeBlocked indicates safe mode is on and nothing was spawned.
	ErrSafeModeBlocked = errors.New("execution blocked by safe mode")
	// ErrAlreadyRunning indicates the command already has a live instance.
	ErrAlreadyRunning = errors.New("command is already running")
	// ErrNotRunning indicates there is neither a kill script nor a tracked process.
	ErrNotRunning = errors.New("command is not running")
	// ErrSpawnFailed indicates the OS refused to create the child process.
	ErrSpawnFailed = errors.New("failed to spawn process")
)

// CommandService manages the stored command definitions.
type CommandService struct {
	store *store.CommandStore
}

// NewCommandService creates a new CommandService instance.
func NewCommandService(store *store.CommandStore) *CommandService {
	return &CommandService{store: store}
}

// List returns all stored commands in insertion order.
func (s *CommandService) List() ([]models.Command, error) {
	return s.store.List()
}

// Get retrieves a command by its id.
func (s *CommandService) Get(id string) (*models.Command, error) {
	commands, err := s.store.List()
	if err != nil {
		return nil, err
	}
	for i := range commands {
		if commands[i].ID == id {
			return &commands[i], nil
		}
	}
	return nil, ErrCommandNotFound
}

// FindByShortcut returns the command bound to the given shortcut string.
func (s *CommandService) FindByShortcut(binding string) (*models.Command, error) {
	commands, err := s.store.List()
	if err != nil {
		return nil, err
	}
	for i := range commands {
		if commands[i].Shortcut != nil && *commands[i].Shortcut == binding {
			return &commands[i], nil
		}
	}
	return nil, ErrCommandNotFound
}

// Add appends a new command, assigning an id when the caller left it empty.
func (s *CommandService) Add(cmd models.Command) (*models.Command, error) {
	if cmd.ID == "" {
		cmd.ID = uuid.New().String()
	}
	if err := validation.ValidateCommand(cmd.Name, cmd.Script); err != nil {
		return nil, err
	}

	commands, err := s.store.List()
	if err != nil {
		return nil, err
	}
	for i := range commands {
		if commands[i].ID == cmd.ID {
			return nil, ErrCommandExists
		}
	}

	commands = append(commands, cmd)
	if err := s.store.Save(commands); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// Update replaces a stored command wholesale, keyed by its id.
func (s *CommandService) Update(cmd models.Command) error {
	if err := validation.ValidateCommand(cmd.Name, cmd.Script); err != nil {
		return err
	}

	commands, err := s.store.List()
	if err != nil {
		return err
	}
	for i := range commands {
		if commands[i].ID == cmd.ID {
			commands[i] = cmd
			return s.store.Save(commands)
		}
	}
	return ErrCommandNotFound
}

// Delete removes a stored command by id.
func (s *CommandService) Delete(id string) error {
	commands, err := s.store.List()
	if err != nil {
		return err
	}
	for i := range commands {
		if commands[i].ID == id {
			commands = append(commands[:i], commands[i+1:]...)
			return s.store.Save(commands)
		}
	}
	return ErrCommandNotFound
}
