// Package validation provides input validation for command definitions.
package validation

import (
	"errors"
	"strings"
)

var (
	// ErrNameRequired indicates the command has no display name.
	ErrNameRequired = errors.New("command name is required")
	// ErrScriptRequired indicates the command has no script to run.
	ErrScriptRequired = errors.New("command script is required")
	// ErrInputTooLong indicates input exceeds maximum length.
	ErrInputTooLong = errors.New("input exceeds maximum length")
)

const (
	maxNameLength   = 256
	maxScriptLength = 65536
)

// ValidateCommand checks the user-supplied parts of a command definition.
func ValidateCommand(name, script string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(name) > maxNameLength {
		return ErrInputTooLong
	}
	if strings.TrimSpace(script) == "" {
		return ErrScriptRequired
	}
	if len(script) > maxScriptLength {
		return ErrInputTooLong
	}
	return nil
}
