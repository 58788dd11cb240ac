// Package config handles the XDG configuration directory, the optional
// config.yaml file and the location of the tasks file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tasktracker/internal/logging"
	"tasktracker/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "tasktracker"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// TasksFile is the default tasks filename.
	TasksFile = "tasks.json"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvTasksFile overrides the tasks file location.
	EnvTasksFile = "TASKTRACKER_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TasksFile is the tasks file path. Empty means Dir/tasks.json.
	TasksFile string

	// DefaultPriority is used by add when no priority flag is given.
	DefaultPriority task.Priority

	// GoogleList is the Google Tasks list push writes to.
	// Empty means the user's default list.
	GoogleList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives warnings and debug records. Nil discards them.
	Logger *slog.Logger
}

// fileConfig is the schema of config.yaml.
type fileConfig struct {
	TasksFile       string `yaml:"tasks_file"`
	DefaultPriority string `yaml:"default_priority"`
	GoogleList      string `yaml:"google_list"`
}

// New creates a Config for the default or specified config directory and
// applies config.yaml and the TASKTRACKER_FILE environment variable.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktracker or
// $HOME/.config/tasktracker.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, DefaultPriority: task.DefaultPriority}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvTasksFile); env != "" {
		cfg.TasksFile = env
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.TasksFile != "" {
		c.TasksFile = fc.TasksFile
		if !filepath.IsAbs(c.TasksFile) {
			c.TasksFile = filepath.Join(c.Dir, c.TasksFile)
		}
	}
	if fc.DefaultPriority != "" {
		c.DefaultPriority = task.NormalizePriority(fc.DefaultPriority)
	}
	c.GoogleList = fc.GoogleList
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TasksPath returns the path of the tasks file.
func (c *Config) TasksPath() string {
	if c.TasksFile != "" {
		return c.TasksFile
	}
	return filepath.Join(c.Dir, TasksFile)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
