package services

import (
	"log"
	"os"
	"os/exec"
	"strings"
)

// Kill stops the running instance of the command with the given id. A
// non-empty kill script always takes precedence over signaling the tracked
// pid; the raw-signal fallback applies only when no kill script is set.
// Kill never removes the registry entry itself. The Execute call that owns
// the entry observes the process exit and unregisters it, so "not running"
// is eventually consistent after a successful Kill.
func (s *ExecutorService) Kill(id string) error {
	cmd, err := s.commands.Get(id)
	if err != nil {
		return err
	}

	if cmd.KillScript != nil && strings.TrimSpace(*cmd.KillScript) != "" {
		log.Printf("[terminator] running kill script for command %q (%s)", cmd.Name, cmd.ID)
		// The kill script is best effort: its own failure still counts
		// as an attempted termination and is never propagated.
		if out, err := exec.Command("sh", "-c", *cmd.KillScript).CombinedOutput(); err != nil {
			log.Printf("[terminator] kill script for %q failed: %v (output: %s)", cmd.Name, err, strings.TrimSpace(string(out)))
		}
		return nil
	}

	pid, ok := s.registry.Lookup(id)
	if !ok {
		return ErrNotRunning
	}

	log.Printf("[terminator] killing pid %d for command %q (%s)", pid, cmd.Name, cmd.ID)
	proc, err := os.FindProcess(pid)
	if err != nil {
		return ErrNotRunning
	}
	if err := proc.Kill(); err != nil {
		// The process finished between lookup and signal delivery.
		return ErrNotRunning
	}
	return nil
}
