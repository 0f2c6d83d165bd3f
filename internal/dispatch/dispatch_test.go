package dispatch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tkrajnik/runkey/internal/database"
	"github.com/tkrajnik/runkey/internal/dispatch"
	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/registry"
	"github.com/tkrajnik/runkey/internal/services"
	"github.com/tkrajnik/runkey/internal/store"
)

func setupDispatcher(t *testing.T) (*dispatch.Dispatcher, *services.CommandService) {
	t.Helper()
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

	return dispatch.NewDispatcher(commands, executor), commands
}

func TestDispatcher_TriggerRunsBoundCommand(t *testing.T) {
	dispatcher, commands := setupDispatcher(t)

	marker := filepath.Join(t.TempDir(), "fired")
	shortcut := "Ctrl+Shift+R"
	if _, err := commands.Add(models.Command{
		ID:       "1",
		Name:     "touch",
		Script:   "touch " + marker,
		Shortcut: &shortcut,
	}); err != nil {
		t.Fatalf("failed to add command: %v", err)
	}

	if err := dispatcher.Trigger("Ctrl+Shift+R"); err != nil {
		t.Fatalf("failed to trigger shortcut: %v", err)
	}

	// The execution is fire-and-forget; poll for its side effect.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("bound command never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDispatcher_TriggerUnknownBinding(t *testing.T) {
	dispatcher, _ := setupDispatcher(t)

	err := dispatcher.Trigger("Ctrl+Nothing")
	if !errors.Is(err, dispatch.ErrNoBinding) {
		t.Errorf("expected ErrNoBinding, got %v", err)
	}
}
