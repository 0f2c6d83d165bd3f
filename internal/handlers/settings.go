package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/store"
)

// SettingsHandler handles HTTP requests for the settings document and
// storage-path management.
type SettingsHandler struct {
	settings *store.SettingsStore
	commands *store.CommandStore
}

// NewSettingsHandler creates a new SettingsHandler instance.
func NewSettingsHandler(settings *store.SettingsStore, commands *store.CommandStore) *SettingsHandler {
	return &SettingsHandler{settings: settings, commands: commands}
}

// Get returns the current settings, synthesizing defaults when nothing has
// been saved yet.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update replaces the settings document wholesale.
func (h *SettingsHandler) Update(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.Save(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// EnsureStorageDir creates the parent directories of the configured commands
// path and returns the resolved location. The shell calls this right after
// the user changes commands_path.
func (h *SettingsHandler) EnsureStorageDir(c *gin.Context) {
	path, err := h.commands.EnsureDir()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}
