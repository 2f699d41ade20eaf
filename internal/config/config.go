// Package config loads client settings from defaults, the user config file
// and TASKFLOW_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/taskflow/internal/api"
)

const envPrefix = "TASKFLOW"

// Config holds every user-tunable setting.
type Config struct {
	BackendURL       string `yaml:"backend_url" mapstructure:"backend_url"`
	DBPath           string `yaml:"db_path" mapstructure:"db_path"`
	NoticeDurationMs int    `yaml:"notice_duration_ms" mapstructure:"notice_duration_ms"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms" mapstructure:"request_timeout_ms"`
	LogLevel         string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat        string `yaml:"log_format" mapstructure:"log_format"`
	SentryDSN        string `yaml:"sentry_dsn" mapstructure:"sentry_dsn"`
	TelemetryEnabled bool   `yaml:"telemetry_enabled" mapstructure:"telemetry_enabled"`
}

// Dir returns ~/.taskflow, or "." when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskflow")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:       "http://localhost:8080",
		DBPath:           filepath.Join(Dir(), "taskflow.db"),
		NoticeDurationMs: 4000,
		RequestTimeoutMs: 0, // no overall request timeout
		LogLevel:         "warn",
		LogFormat:        "text",
	}
}

// Load reads the file at path (Path() when empty). A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend_url", defaults.BackendURL)
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("notice_duration_ms", defaults.NoticeDurationMs)
	v.SetDefault("request_timeout_ms", defaults.RequestTimeoutMs)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("sentry_dsn", defaults.SentryDSN)
	v.SetDefault("telemetry_enabled", defaults.TelemetryEnabled)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("backend_url must not be empty")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend_url %q must start with http:// or https://", c.BackendURL)
	}
	if c.RequestTimeoutMs < 0 {
		return fmt.Errorf("request_timeout_ms must not be negative, got %d", c.RequestTimeoutMs)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// API derives the HTTP client settings.
func (c *Config) API() api.Config {
	cfg := api.DefaultConfig()
	cfg.BaseURL = strings.TrimRight(c.BackendURL, "/")
	cfg.Timeout = time.Duration(c.RequestTimeoutMs) * time.Millisecond
	return cfg
}

// NoticeDuration is how long notices stay visible.
func (c *Config) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeDurationMs) * time.Millisecond
}

// YAML renders the effective settings. The Sentry DSN is masked.
func (c *Config) YAML() ([]byte, error) {
	out := *c
	if out.SentryDSN != "" {
		out.SentryDSN = "********"
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
