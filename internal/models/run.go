package models

import "time"

// RunStatus represents the lifecycle state of a recorded run.
type RunStatus string

const (
	// StatusRunning indicates the child process is still alive.
	StatusRunning RunStatus = "running"
	// StatusCompleted indicates the process exited on its own.
	StatusCompleted RunStatus = "completed"
	// StatusKilled indicates the process died from a termination signal.
	StatusKilled RunStatus = "killed"
	// StatusFailed indicates the process could not be spawned.
	StatusFailed RunStatus = "failed"
)

// Run is one recorded execution of a command.
type Run struct {
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	ExitCode    *int       `json:"exit_code"`
	ID          string     `json:"id"`
	CommandID   string     `json:"command_id"`
	CommandName string     `json:"command_name"`
	Status      RunStatus  `json:"status"`
	Output      string     `json:"output"`
}

// ExecResult is what an execution returns once the child process is gone.
// A non-zero exit code is data, not an error; Terminated marks a process
// that died from a signal instead of exiting on its own.
type ExecResult struct {
	Output     string `json:"output"`
	ExitCode   int    `json:"exit_code"`
	Terminated bool   `json:"terminated"`
}
