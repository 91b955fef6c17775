package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Defaults applied when neither the environment nor the config file set a value.
const (
	DefaultPort          = ":5000"
	DefaultAllowedOrigin = "https://spageai.mvpdeliver.com"
	DefaultUpstreamURL   = "https://api.deepseek.com/v1/chat/completions"
	DefaultModel         = "deepseek-coder"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultRetentionDays = 30
)

// ErrMissingAPIKey is returned when no provider API key is configured.
var ErrMissingAPIKey = errors.New("DEEPSEEK_API_KEY is required")

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults. It is built once in main and
// treated as read-only afterwards.
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":5000")
	ServerPort string

	// APIKey authenticates against the completion provider
	APIKey string

	// AllowedOrigin is the single browser origin permitted by CORS
	AllowedOrigin string

	// UpstreamURL is the provider's chat-completions endpoint
	UpstreamURL string

	// Model is the provider model name sent upstream
	Model string

	LogLevel  string
	LogFormat string

	// EnableUsageLog persists one row per generation to SQLite
	EnableUsageLog bool

	// RetentionDays prunes generation logs older than this at startup; 0 keeps everything
	RetentionDays int
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() (*Config, error) {
	fileConfig, err := LoadFile(ConfigPath())
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:     normalizePort(getEnvOrFile("PORT", fileConfig.Port, DefaultPort)),
		APIKey:         getEnvOrFile("DEEPSEEK_API_KEY", fileConfig.APIKey, ""),
		AllowedOrigin:  getEnvOrFile("ALLOWED_ORIGIN", fileConfig.AllowedOrigin, DefaultAllowedOrigin),
		UpstreamURL:    getEnvOrFile("DEEPSEEK_API_URL", fileConfig.UpstreamURL, DefaultUpstreamURL),
		Model:          getEnvOrFile("DEEPSEEK_MODEL", fileConfig.Model, DefaultModel),
		LogLevel:       getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, DefaultLogLevel),
		LogFormat:      getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, DefaultLogFormat),
		EnableUsageLog: getEnvBoolOrFile("ENABLE_USAGE_LOG", fileConfig.EnableUsageLog, false),
	}

	retention, err := getEnvIntOrFile("USAGE_RETENTION_DAYS", fileConfig.RetentionDays, DefaultRetentionDays)
	if err != nil {
		return nil, err
	}
	cfg.RetentionDays = retention

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}

	origin, err := url.Parse(c.AllowedOrigin)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("invalid allowed origin %q", c.AllowedOrigin)
	}

	upstream, err := url.Parse(c.UpstreamURL)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return fmt.Errorf("invalid upstream url %q", c.UpstreamURL)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.RetentionDays < 0 {
		return fmt.Errorf("invalid usage retention %d: must not be negative", c.RetentionDays)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.LogFormat)
	}

	return nil
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// normalizePort accepts "5000" as well as ":5000" or "127.0.0.1:5000".
func normalizePort(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvIntOrFile returns env int, file int, or default (in priority order)
func getEnvIntOrFile(key string, fileValue *int, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		return n, nil
	}
	if fileValue != nil {
		return *fileValue, nil
	}
	return defaultValue, nil
}
