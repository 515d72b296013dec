// ABOUTME: Configuration for listahan storage and logging.
// ABOUTME: Reads YAML from the XDG config dir, with environment overrides.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user settings.
type Config struct {
	// Backend is the durable store: "badger" (default) or "sqlite".
	Backend string `yaml:"backend"`

	// DataDir holds the store files (default: $XDG_DATA_HOME/listahan).
	DataDir string `yaml:"data_dir"`

	LogLevel  string `yaml:"log_level"`
	PrettyLog bool   `yaml:"pretty_log"`

	// LogFile receives logs while the TUI owns the terminal. Empty disables TUI logging.
	LogFile string `yaml:"log_file,omitempty"`

	// CompactOnLoad rewrites the collection when malformed entries are dropped.
	CompactOnLoad bool `yaml:"compact_on_load"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:       "badger",
		DataDir:       DataDir(),
		LogLevel:      "warn",
		PrettyLog:     true,
		CompactOnLoad: true,
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "listahan")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the default data directory.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "listahan")
}

// Load reads the config at path (ConfigPath when empty), returning defaults if it does not
// exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is user-controlled by design
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LISTAHAN_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("LISTAHAN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LISTAHAN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case "badger", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid backend %q: want badger or sqlite", c.Backend)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}

// StorePath returns where the configured backend keeps its files.
func (c *Config) StorePath() string {
	if c.Backend == "sqlite" {
		return filepath.Join(c.DataDir, "listahan.db")
	}
	return filepath.Join(c.DataDir, "badger")
}

// Save writes cfg to path (ConfigPath when empty).
func Save(path string, cfg *Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
