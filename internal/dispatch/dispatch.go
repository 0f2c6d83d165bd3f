// Package dispatch routes global-shortcut events to command execution. The
// OS-level hotkey listener lives in the desktop shell; it reports fired
// bindings here.
package dispatch

import (
	"errors"
	"log"

	"github.com/tkrajnik/runkey/internal/services"
)

// ErrNoBinding indicates no stored command claims the fired shortcut.
var ErrNoBinding = errors.New("no command bound to shortcut")

// Dispatcher resolves a shortcut binding to its command and fires an
// execution without blocking the caller.
type Dispatcher struct {
	commands *services.CommandService
	executor *services.ExecutorService
}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher(commands *services.CommandService, executor *services.ExecutorService) *Dispatcher {
	return &Dispatcher{commands: commands, executor: executor}
}

// Trigger launches the command bound to the given shortcut string. The
// execution runs on its own goroutine; its outcome is logged and recorded in
// the run history like any other execution.
func (d *Dispatcher) Trigger(binding string) error {
	cmd, err := d.commands.FindByShortcut(binding)
	if err != nil {
		if errors.Is(err, services.ErrCommandNotFound) {
			return ErrNoBinding
		}
		return err
	}

	log.Printf("[dispatch] shortcut %q fired, executing command %q (%s)", binding, cmd.Name, cmd.ID)
	go func() {
		if _, err := d.executor.Execute(cmd.ID); err != nil {
			log.Printf("[dispatch] shortcut execution of %q failed: %v", cmd.Name, err)
		}
	}()
	return nil
}
