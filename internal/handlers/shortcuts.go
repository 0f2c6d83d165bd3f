package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkrajnik/runkey/internal/dispatch"
)

// ShortcutHandler receives fired hotkey events from the desktop shell.
type ShortcutHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewShortcutHandler creates a new ShortcutHandler instance.
func NewShortcutHandler(dispatcher *dispatch.Dispatcher) *ShortcutHandler {
	return &ShortcutHandler{dispatcher: dispatcher}
}

type triggerRequest struct {
	Binding string `json:"binding" binding:"required"`
}

// Trigger fires the command bound to a shortcut. The execution itself runs
// in the background; the response only acknowledges the dispatch.
func (h *ShortcutHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatcher.Trigger(req.Binding); err != nil {
		if errors.Is(err, dispatch.ErrNoBinding) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no command bound to shortcut"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "execution dispatched"})
}
