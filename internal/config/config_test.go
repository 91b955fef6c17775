package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every variable Load reads so the host environment can't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DEEPSEEK_API_KEY", "ALLOWED_ORIGIN", "DEEPSEEK_API_URL",
		"DEEPSEEK_MODEL", "LOG_LEVEL", "LOG_FORMAT", "ENABLE_USAGE_LOG",
		"USAGE_RETENTION_DAYS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "missing.toml"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != DefaultPort {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, DefaultPort)
	}
	if cfg.AllowedOrigin != DefaultAllowedOrigin {
		t.Errorf("AllowedOrigin = %q, want %q", cfg.AllowedOrigin, DefaultAllowedOrigin)
	}
	if cfg.UpstreamURL != DefaultUpstreamURL {
		t.Errorf("UpstreamURL = %q, want %q", cfg.UpstreamURL, DefaultUpstreamURL)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.EnableUsageLog {
		t.Error("EnableUsageLog should default to false")
	}
	if cfg.RetentionDays != DefaultRetentionDays {
		t.Errorf("RetentionDays = %d, want %d", cfg.RetentionDays, DefaultRetentionDays)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Load() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
port = "7000"
api_key = "sk-file"
allowed_origin = "https://file.example.com"
model = "deepseek-chat"
enable_usage_log = true
usage_retention_days = 7
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, path)
	t.Setenv("ALLOWED_ORIGIN", "https://env.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != ":7000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, ":7000")
	}
	if cfg.APIKey != "sk-file" {
		t.Errorf("APIKey = %q, want file value", cfg.APIKey)
	}
	if cfg.AllowedOrigin != "https://env.example.com" {
		t.Errorf("AllowedOrigin = %q, want env value", cfg.AllowedOrigin)
	}
	if cfg.Model != "deepseek-chat" {
		t.Errorf("Model = %q, want %q", cfg.Model, "deepseek-chat")
	}
	if !cfg.EnableUsageLog {
		t.Error("EnableUsageLog should come from file")
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.RetentionDays)
	}
}

func TestLoad_InvalidRetention(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("USAGE_RETENTION_DAYS", "a week")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric retention")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = "), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIKey:        "sk-test",
		AllowedOrigin: "https://example.com",
		UpstreamURL:   "https://api.example.com/v1/chat/completions",
		LogLevel:      "info",
		LogFormat:     "text",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "blank api key", mutate: func(c *Config) { c.APIKey = "  " }, wantErr: true},
		{name: "origin without scheme", mutate: func(c *Config) { c.AllowedOrigin = "example.com" }, wantErr: true},
		{name: "relative upstream", mutate: func(c *Config) { c.UpstreamURL = "/v1/chat" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "negative retention", mutate: func(c *Config) { c.RetentionDays = -1 }, wantErr: true},
		{name: "debug level", mutate: func(c *Config) { c.LogLevel = "debug" }},
		{name: "json format", mutate: func(c *Config) { c.LogFormat = "json" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	level, err := cfg.SlogLevel()
	if err != nil {
		t.Fatalf("SlogLevel() error: %v", err)
	}
	if level != slog.LevelWarn {
		t.Errorf("SlogLevel() = %v, want %v", level, slog.LevelWarn)
	}
}

func TestNormalizePort(t *testing.T) {
	tests := map[string]string{
		"5000":           ":5000",
		":8080":          ":8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}
	for in, want := range tests {
		if got := normalizePort(in); got != want {
			t.Errorf("normalizePort(%q) = %q, want %q", in, got, want)
		}
	}
}
