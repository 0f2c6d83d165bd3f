// Package handlers exposes the core operations over HTTP for the desktop
// shell that hosts the UI and the global-shortcut listener.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/services"
	"github.com/tkrajnik/runkey/internal/validation"
)

// CommandHandler handles HTTP requests for command CRUD, execution, and
// termination.
type CommandHandler struct {
	commands *services.CommandService
	executor *services.ExecutorService
}

// NewCommandHandler creates a new CommandHandler instance.
func NewCommandHandler(commands *services.CommandService, executor *services.ExecutorService) *CommandHandler {
	return &CommandHandler{commands: commands, executor: executor}
}

// List returns all stored commands.
func (h *CommandHandler) List(c *gin.Context) {
	commands, err := h.commands.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, commands)
}

// Create stores a new command.
func (h *CommandHandler) Create(c *gin.Context) {
	var cmd models.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.commands.Add(cmd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCommandExists):
			c.JSON(http.StatusConflict, gin.H{"error": "command already exists"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update replaces a stored command.
func (h *CommandHandler) Update(c *gin.Context) {
	var cmd models.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.ID = c.Param("id")

	if err := h.commands.Update(cmd); err != nil {
		switch {
		case errors.Is(err, services.ErrCommandNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "command not found"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, cmd)
}

// Delete removes a stored command.
func (h *CommandHandler) Delete(c *gin.Context) {
	if err := h.commands.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrCommandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "command not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "command deleted"})
}

// Execute runs a command and blocks until it completes, returning the
// combined output and exit status.
func (h *CommandHandler) Execute(c *gin.Context) {
	result, err := h.executor.Execute(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCommandNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "command not found"})
		case errors.Is(err, services.ErrSafeModeBlocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "execution blocked by safe mode"})
		case errors.Is(err, services.ErrAlreadyRunning):
			c.JSON(http.StatusConflict, gin.H{"error": "command is already running"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Kill terminates the running instance of a command.
func (h *CommandHandler) Kill(c *gin.Context) {
	if err := h.executor.Kill(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrCommandNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "command not found"})
		case errors.Is(err, services.ErrNotRunning):
			c.JSON(http.StatusNotFound, gin.H{"error": "command is not running"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "termination attempted"})
}

func isValidationError(err error) bool {
	return errors.Is(err, validation.ErrNameRequired) ||
		errors.Is(err, validation.ErrScriptRequired) ||
		errors.Is(err, validation.ErrInputTooLong)
}
