// Package models defines the data shapes shared by the stores, services, and HTTP layer.
package models

// Command is a stored, user-authored execution unit. The optional fields are
// pointers so a field left unset round-trips through the JSON store as absent
// rather than as an empty string.
type Command struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Script      string  `json:"script"`
	KillScript  *string `json:"kill_script,omitempty"`
	Shortcut    *string `json:"shortcut,omitempty"`
	Description *string `json:"description,omitempty"`
}
