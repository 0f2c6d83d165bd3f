package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tkrajnik/runkey/internal/database"
	"github.com/tkrajnik/runkey/internal/models"
)

// HistoryService records one row per execution in SQLite. The history is
// purely observational: the process registry, not the database, is the
// source of truth for what is running, so recording failures are logged
// and never fail the execution they describe.
type HistoryService struct {
	db *database.DB
}

// NewHistoryService creates a new HistoryService instance.
func NewHistoryService(db *database.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Start records a freshly spawned run and returns its id.
func (s *HistoryService) Start(cmd *models.Command, pid int) string {
	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, command_id, command_name, status, started_at) VALUES (?, ?, ?, ?, ?)",
		id, cmd.ID, cmd.Name, models.StatusRunning, time.Now(),
	)
	if err != nil {
		log.Printf("[history] failed to record run start for %q (pid %d): %v", cmd.Name, pid, err)
	}
	return id
}

// Finish marks a run as completed or killed and stores its output.
func (s *HistoryService) Finish(runID string, result *models.ExecResult) {
	status := models.StatusCompleted
	if result.Terminated {
		status = models.StatusKilled
	}
	_, err := s.db.Exec(
		"UPDATE runs SET status = ?, output = ?, exit_code = ?, finished_at = ? WHERE id = ?",
		status, result.Output, result.ExitCode, time.Now(), runID,
	)
	if err != nil {
		log.Printf("[history] failed to record run finish %s: %v", runID, err)
	}
}

// Fail marks an already started run as failed.
func (s *HistoryService) Fail(runID string, cause error) {
	_, err := s.db.Exec(
		"UPDATE runs SET status = ?, output = ?, finished_at = ? WHERE id = ?",
		models.StatusFailed, cause.Error(), time.Now(), runID,
	)
	if err != nil {
		log.Printf("[history] failed to record run failure %s: %v", runID, err)
	}
}

// RecordSpawnFailure records a run that never produced a process.
func (s *HistoryService) RecordSpawnFailure(cmd *models.Command, cause error) {
	now := time.Now()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, command_id, command_name, status, output, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		uuid.New().String(), cmd.ID, cmd.Name, models.StatusFailed, cause.Error(), now, now,
	)
	if err != nil {
		log.Printf("[history] failed to record spawn failure for %q: %v", cmd.Name, err)
	}
}

// List returns the most recent runs, newest first.
func (s *HistoryService) List(limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, command_id, command_name, status, output, exit_code, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		var output sql.NullString
		var exitCode sql.NullInt64
		var finishedAt sql.NullTime

		if err := rows.Scan(
			&run.ID, &run.CommandID, &run.CommandName, &run.Status,
			&output, &exitCode, &run.StartedAt, &finishedAt,
		); err != nil {
			return nil, err
		}

		if output.Valid {
			run.Output = output.String
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			run.ExitCode = &code
		}
		if finishedAt.Valid {
			run.FinishedAt = &finishedAt.Time
		}

		runs = append(runs, run)
	}
	return runs, rows.Err()
}
