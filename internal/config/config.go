package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ServerConfig holds the local HTTP server settings.
type ServerConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	OpenBrowser bool   `json:"open_browser"`
}

// TargetConfig names the document being edited.
type TargetConfig struct {
	// Path is the document path. Empty means ~/.claude.json.
	Path string `json:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `json:"level"`
	ToConsole  bool   `json:"to_console"`
	RotationMB int    `json:"rotation_mb"`
}

// Config is the editor's own configuration.
// Stored as ~/.claude-config-editor/config.json.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Target  TargetConfig  `json:"target"`
	Logging LoggingConfig `json:"logging"`
}

// DirName is the editor's data directory under the user's home.
const DirName = ".claude-config-editor"

// DefaultDir returns ~/.claude-config-editor.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8765,
			OpenBrowser: false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			ToConsole:  false,
			RotationMB: 10,
		},
	}
}

// Load reads a config from the JSON file at path on top of the defaults, so
// missing fields keep their default values. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadJSON(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	EnsureDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to path as indented JSON.
func Save(cfg *Config, path string) error {
	if err := saveJSON(path, cfg, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// isValidLogLevel reports whether s is an acceptable logging.level value.
func isValidLogLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// Validate checks cfg and returns one error describing every problem found.
func Validate(cfg *Config) error {
	var errs []string

	if !isValidLogLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Sprintf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level))
	}

	if cfg.Logging.RotationMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.rotation_mb must be >= 1; got %d", cfg.Logging.RotationMB))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be between 1 and 65535; got %d", cfg.Server.Port))
	}

	if cfg.Server.Host == "" {
		errs = append(errs, "server.host must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	return nil
}

// EnsureDefaults fills zero-value string fields with their defaults.
// Numeric fields are left alone: Load already decodes on top of
// DefaultConfig, so a zero there was written by the user and Validate
// reports it.
func EnsureDefaults(cfg *Config) {
	d := DefaultConfig()

	if cfg.Server.Host == "" {
		cfg.Server.Host = d.Server.Host
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
}
