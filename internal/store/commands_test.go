package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/store"
)

func strPtr(s string) *string {
	return &s
}

func setupStores(t *testing.T) (*store.CommandStore, *store.SettingsStore, string) {
	t.Helper()
	dataDir := t.TempDir()
	settings := store.NewSettingsStore(dataDir)
	commands := store.NewCommandStore(dataDir, settings)
	return commands, settings, dataDir
}

func TestCommandStore_ListMissingFile(t *testing.T) {
	commands, _, _ := setupStores(t)

	list, err := commands.List()
	if err != nil {
		t.Fatalf("expected missing file to yield empty list, got error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d commands", len(list))
	}
}

func TestCommandStore_RoundTrip(t *testing.T) {
	commands, _, _ := setupStores(t)

	in := []models.Command{
		{ID: "1", Name: "First", Script: "echo 1"},
		{
			ID:          "2",
			Name:        "Second",
			Script:      "echo 2",
			KillScript:  strPtr("pkill -f 'echo 2'"),
			Shortcut:    strPtr("Ctrl+2"),
			Description: strPtr("second command"),
		},
		{ID: "3", Name: "Third", Script: "echo 3"},
	}

	if err := commands.Save(in); err != nil {
		t.Fatalf("failed to save commands: %v", err)
	}

	out, err := commands.List()
	if err != nil {
		t.Fatalf("failed to load commands: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("expected %d commands, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Errorf("command %d: expected id %q, got %q (order must be preserved)", i, in[i].ID, out[i].ID)
		}
	}
	if out[1].KillScript == nil || *out[1].KillScript != *in[1].KillScript {
		t.Errorf("kill script did not survive the round trip")
	}
	if out[0].Shortcut != nil {
		t.Errorf("expected absent shortcut to stay absent, got %q", *out[0].Shortcut)
	}
}

func TestCommandStore_AbsentOptionalFieldsStayAbsent(t *testing.T) {
	commands, _, dataDir := setupStores(t)

	if err := commands.Save([]models.Command{{ID: "1", Name: "Bare", Script: "true"}}); err != nil {
		t.Fatalf("failed to save commands: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "commands.json"))
	if err != nil {
		t.Fatalf("failed to read commands file: %v", err)
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to parse commands file: %v", err)
	}
	for _, key := range []string{"kill_script", "shortcut", "description"} {
		if _, ok := raw[0][key]; ok {
			t.Errorf("expected unset %q to be omitted from the document", key)
		}
	}
}

func TestCommandStore_PathOverride(t *testing.T) {
	commands, settings, _ := setupStores(t)

	override := filepath.Join(t.TempDir(), "nested", "my-commands.json")
	if err := settings.Save(models.Settings{CommandsPath: &override}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	path, err := commands.Path()
	if err != nil {
		t.Fatalf("failed to resolve path: %v", err)
	}
	if path != override {
		t.Errorf("expected path %q, got %q", override, path)
	}

	// Save must create the missing parent directories.
	if err := commands.Save([]models.Command{{ID: "1", Name: "Test", Script: "true"}}); err != nil {
		t.Fatalf("failed to save to override path: %v", err)
	}
	if _, err := os.Stat(override); err != nil {
		t.Errorf("expected commands file at override path: %v", err)
	}
}

func TestCommandStore_HomeExpansionInOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	commands, settings, _ := setupStores(t)

	override := "~/runkey/commands.json"
	if err := settings.Save(models.Settings{CommandsPath: &override}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	path, err := commands.Path()
	if err != nil {
		t.Fatalf("failed to resolve path: %v", err)
	}
	want := filepath.Join(home, "runkey", "commands.json")
	if path != want {
		t.Errorf("expected expanded path %q, got %q", want, path)
	}
}

func TestCommandStore_EnsureDir(t *testing.T) {
	commands, settings, _ := setupStores(t)

	override := filepath.Join(t.TempDir(), "deep", "nested", "commands.json")
	if err := settings.Save(models.Settings{CommandsPath: &override}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	path, err := commands.EnsureDir()
	if err != nil {
		t.Fatalf("failed to ensure storage directory: %v", err)
	}
	if path != override {
		t.Errorf("expected resolved path %q, got %q", override, path)
	}

	info, err := os.Stat(filepath.Dir(override))
	if err != nil || !info.IsDir() {
		t.Errorf("expected parent directory to exist: %v", err)
	}
}

func TestCommandStore_SaveDoesNotTruncateOnOverwrite(t *testing.T) {
	commands, _, dataDir := setupStores(t)

	if err := commands.Save([]models.Command{{ID: "1", Name: "One", Script: "true"}}); err != nil {
		t.Fatalf("failed to save initial commands: %v", err)
	}
	if err := commands.Save([]models.Command{
		{ID: "1", Name: "One", Script: "true"},
		{ID: "2", Name: "Two", Script: "false"},
	}); err != nil {
		t.Fatalf("failed to overwrite commands: %v", err)
	}

	// The write goes through a temp file plus rename; no temp residue may
	// remain next to the document.
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		t.Fatalf("failed to read data dir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "commands.json" {
			t.Errorf("unexpected file in data dir: %s", e.Name())
		}
	}

	list, err := commands.List()
	if err != nil {
		t.Fatalf("failed to reload commands: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 commands after overwrite, got %d", len(list))
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/sub/file.json", filepath.Join(home, "sub", "file.json")},
		{"/absolute/path.json", "/absolute/path.json"},
		{"relative/path.json", "relative/path.json"},
	}

	for _, tt := range tests {
		got, err := store.ExpandHome(tt.in)
		if err != nil {
			t.Errorf("ExpandHome(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
