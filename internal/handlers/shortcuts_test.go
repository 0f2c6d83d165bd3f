package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tkrajnik/runkey/internal/database"
	"github.com/tkrajnik/runkey/internal/dispatch"
	"github.com/tkrajnik/runkey/internal/handlers"
	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/registry"
	"github.com/tkrajnik/runkey/internal/services"
	"github.com/tkrajnik/runkey/internal/store"
)

func setupShortcutHandlerTest(t *testing.T) (*gin.Engine, *services.CommandService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	settings := store.NewSettingsStore(dataDir)
	commands := services.NewCommandService(store.NewCommandStore(dataDir, settings))
	history := services.NewHistoryService(db)
	executor := services.NewExecutorService(commands, settings, registry.New(), history)
	dispatcher := dispatch.NewDispatcher(commands, executor)

	handler := handlers.NewShortcutHandler(dispatcher)

	router := gin.New()
	router.POST("/api/shortcuts/trigger", handler.Trigger)

	return router, commands
}

func TestShortcutHandler_Trigger(t *testing.T) {
	router, commands := setupShortcutHandlerTest(t)

	marker := filepath.Join(t.TempDir(), "fired")
	shortcut := "Cmd+R"
	if _, err := commands.Add(models.Command{
		ID:       "1",
		Name:     "touch",
		Script:   "touch " + marker,
		Shortcut: &shortcut,
	}); err != nil {
		t.Fatalf("failed to add command: %v", err)
	}

	body := bytes.NewBufferString(`{"binding": "Cmd+R"}`)
	req := httptest.NewRequest("POST", "/api/shortcuts/trigger", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d (%s)", w.Code, w.Body.String())
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("dispatched command never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestShortcutHandler_UnknownBinding(t *testing.T) {
	router, _ := setupShortcutHandlerTest(t)

	body := bytes.NewBufferString(`{"binding": "Cmd+Nothing"}`)
	req := httptest.NewRequest("POST", "/api/shortcuts/trigger", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unbound shortcut, got %d", w.Code)
	}
}

func TestShortcutHandler_MissingBinding(t *testing.T) {
	router, _ := setupShortcutHandlerTest(t)

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest("POST", "/api/shortcuts/trigger", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing binding, got %d", w.Code)
	}
}
