package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tkrajnik/runkey/internal/services"
)

// RunHandler handles HTTP requests for the run history.
type RunHandler struct {
	history *services.HistoryService
}

// NewRunHandler creates a new RunHandler instance.
func NewRunHandler(history *services.HistoryService) *RunHandler {
	return &RunHandler{history: history}
}

// List returns recent runs, newest first.
func (h *RunHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.history.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}
