package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/boards")
	if cfg.Boards.Dir != "/tmp/boards" {
		t.Fatalf("unexpected boards dir %q", cfg.Boards.Dir)
	}
	if cfg.Board.DefaultTitle != "My Kanban Board" {
		t.Fatalf("unexpected default title %q", cfg.Board.DefaultTitle)
	}
	if len(cfg.Board.SeedTasks) != 2 {
		t.Fatalf("unexpected seed tasks %v", cfg.Board.SeedTasks)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging level %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/boards")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Boards.Dir != defaults.Boards.Dir {
		t.Fatalf("expected default boards dir, got %q", cfg.Boards.Dir)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[boards]
dir = "/custom/boards"

[board]
default_title = "Team Board"
seed_tasks = ["First task"]

[logging]
level = "debug"
dev_file = "/tmp/kantui.log"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, Default("/tmp/default-boards"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Boards.Dir != "/custom/boards" {
		t.Fatalf("unexpected boards dir %q", cfg.Boards.Dir)
	}
	if cfg.Board.DefaultTitle != "Team Board" {
		t.Fatalf("unexpected default title %q", cfg.Board.DefaultTitle)
	}
	if len(cfg.Board.SeedTasks) != 1 || cfg.Board.SeedTasks[0] != "First task" {
		t.Fatalf("unexpected seed tasks %v", cfg.Board.SeedTasks)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.DevFile != "/tmp/kantui.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidLoggingLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[logging]
level = "loud"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path, Default("/tmp/boards")); err == nil {
		t.Fatal("expected error for invalid logging level")
	}
}

func TestLoadRejectsEmptyDefaultTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[board]
default_title = "  "
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path, Default("/tmp/boards")); err == nil {
		t.Fatal("expected error for blank default title")
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Fatalf("expected directory created: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	defaults := Default("/tmp/boards")
	cfg, err := Load("", defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Boards.Dir != defaults.Boards.Dir {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
