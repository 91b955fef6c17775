package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigPathEnv overrides the location of the TOML config file.
const ConfigPathEnv = "PAGESMITH_CONFIG"

// FileConfig represents the TOML configuration file structure.
// Pointer fields distinguish "unset" from an explicit zero value.
type FileConfig struct {
	Port           string `toml:"port"`
	APIKey         string `toml:"api_key"`
	AllowedOrigin  string `toml:"allowed_origin"`
	UpstreamURL    string `toml:"upstream_url"`
	Model          string `toml:"model"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	EnableUsageLog *bool  `toml:"enable_usage_log"`
	RetentionDays  *int   `toml:"usage_retention_days"`
}

// ConfigPath returns the path to the config file ($PAGESMITH_CONFIG or ~/.pagesmith/config.toml).
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file at path.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}
