// Package config handles global lexera configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the global lexera configuration.
type Config struct {
	// DefaultBoards is the boards directory used when no path argument is given.
	DefaultBoards string `toml:"default_boards"`

	// Backup controls whether migrations copy files aside before writing.
	Backup bool `toml:"backup"`

	// Workers bounds how many files are migrated concurrently (0 = NumCPU).
	Workers int `toml:"workers"`

	// Sync configures the external sync server supervised by `lexera sync`.
	Sync SyncConfig `toml:"sync"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// SyncConfig describes how to launch and reach the sync server.
type SyncConfig struct {
	// Command is the server launch command, e.g. "node /path/to/cli.js start".
	Command string `toml:"command"`

	// ConfigPath is passed to the server via --config when set.
	ConfigPath string `toml:"config"`

	// Port is the HTTP port of the server's status endpoint.
	Port int `toml:"port"`

	// Log and ErrorLog receive the server's stdout/stderr.
	Log      string `toml:"log"`
	ErrorLog string `toml:"error_log"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DefaultSyncPort is used when the config does not set one.
const DefaultSyncPort = 8080

// GetSyncPort returns the configured sync server port or the default.
func (c *Config) GetSyncPort() int {
	if c.Sync.Port > 0 {
		return c.Sync.Port
	}
	return DefaultSyncPort
}

// GetSyncLogPath returns the server stdout log path, defaulting under $HOME.
func (c *Config) GetSyncLogPath() string {
	if c.Sync.Log != "" {
		return expandHome(c.Sync.Log)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexera-sync.log"
	}
	return filepath.Join(home, ".lexera-sync.log")
}

// GetSyncErrorLogPath returns the server stderr log path.
func (c *Config) GetSyncErrorLogPath() string {
	if c.Sync.ErrorLog != "" {
		return expandHome(c.Sync.ErrorLog)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexera-sync.err.log"
	}
	return filepath.Join(home, ".lexera-sync.err.log")
}

// GetBoardsPath returns the default boards directory.
func (c *Config) GetBoardsPath() (string, error) {
	if c.DefaultBoards == "" {
		return "", fmt.Errorf("no boards directory configured")
	}
	return expandHome(c.DefaultBoards), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{Backup: true}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	config := Config{Backup: true}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/lexera/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "lexera", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "lexera", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
