package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktracker/internal/config"
	"tasktracker/internal/task"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.EnvTasksFile, "")
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if got, want := cfg.TasksPath(), filepath.Join(dir, "tasks.json"); got != want {
		t.Errorf("TasksPath = %q, want %q", got, want)
	}
	if cfg.DefaultPriority != task.Medium {
		t.Errorf("DefaultPriority = %v, want Medium", cfg.DefaultPriority)
	}
	if cfg.GoogleList != "" {
		t.Errorf("GoogleList = %q, want empty", cfg.GoogleList)
	}
}

func TestNew_XDGConfigHome(t *testing.T) {
	t.Setenv(config.EnvTasksFile, "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := config.New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if want := filepath.Join(xdg, "tasktracker"); cfg.Dir != want {
		t.Errorf("Dir = %q, want %q", cfg.Dir, want)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	t.Setenv(config.EnvTasksFile, "")
	dir := t.TempDir()
	content := "tasks_file: work.json\ndefault_priority: high\ngoogle_list: Work\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := cfg.TasksPath(), filepath.Join(dir, "work.json"); got != want {
		t.Errorf("TasksPath = %q, want %q", got, want)
	}
	if cfg.DefaultPriority != task.High {
		t.Errorf("DefaultPriority = %v, want High", cfg.DefaultPriority)
	}
	if cfg.GoogleList != "Work" {
		t.Errorf("GoogleList = %q, want Work", cfg.GoogleList)
	}
}

func TestNew_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tasks_file: work.json\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envPath := filepath.Join(t.TempDir(), "env.json")
	t.Setenv(config.EnvTasksFile, envPath)

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.TasksPath() != envPath {
		t.Errorf("TasksPath = %q, want %q", cfg.TasksPath(), envPath)
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tasks_file: [unclosed\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := config.New(dir)
	if err == nil {
		t.Fatal("expected error for malformed config.yaml")
	}
	if !strings.Contains(err.Error(), "invalid config.yaml") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTokenHelpers(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested")}

	if cfg.HasToken() || cfg.HasOAuthClient() {
		t.Fatal("expected no credential files")
	}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	if !cfg.HasToken() {
		t.Error("expected HasToken after writing token")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if cfg.HasToken() {
		t.Error("expected token to be removed")
	}
}
