// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	UI         UIConfig         `yaml:"ui"`
	Components ComponentsConfig `yaml:"components"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UIConfig configures the generated pages.
type UIConfig struct {
	BaseURL      string `yaml:"base_url"`      // Host prefix of every generated link (default: http://zap)
	FormatTag    string `yaml:"format_tag"`    // Format segment of browsing pages (default: UI)
	Language     string `yaml:"language"`      // Fallback language when the request expresses none
	MessagesFile string `yaml:"messages_file"` // Optional YAML file of localized labels
}

// ComponentsConfig configures where component definitions are read from.
type ComponentsConfig struct {
	Dir string `yaml:"dir"` // Directory of *.yaml, *.yml and *.toml definitions
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // Enable /metrics endpoint
	Path    string `yaml:"path"`    // Custom path (default: /metrics)
}

// Formats reserved for operation output; the UI format tag may not reuse them.
var reservedFormats = map[string]bool{"JSON": true, "HTML": true, "XML": true}

// Load reads configuration from a YAML file.
// A relative components.dir or ui.messages_file is resolved against the
// directory of the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	base := filepath.Dir(path)
	cfg.Components.Dir = resolvePath(base, cfg.Components.Dir)
	cfg.UI.MessagesFile = resolvePath(base, cfg.UI.MessagesFile)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	APIEXPLORER_COMPONENTS_DIR   - Component definitions directory (required)
//	APIEXPLORER_SERVER_HOST      - Server host (default: 0.0.0.0)
//	APIEXPLORER_SERVER_PORT      - Server port (default: 8080)
//	APIEXPLORER_BASE_URL         - Link host prefix (default: http://zap)
//	APIEXPLORER_UI_FORMAT        - Browsing format tag (default: UI)
//	APIEXPLORER_LANGUAGE         - Fallback UI language (default: en)
//	APIEXPLORER_MESSAGES_FILE    - Localized labels file
//	APIEXPLORER_LOG_LEVEL        - Log level: debug, info, warn, error (default: info)
//	APIEXPLORER_LOG_FORMAT       - Log format: json or console (default: json)
//	APIEXPLORER_METRICS_ENABLED  - Enable /metrics endpoint (default: false)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	if HasEnvConfig() {
		return LoadFromEnv()
	}

	return nil, fmt.Errorf("no configuration found: provide config file or set APIEXPLORER_COMPONENTS_DIR")
}

// HasEnvConfig returns true if essential environment variables are set.
func HasEnvConfig() bool {
	return os.Getenv("APIEXPLORER_COMPONENTS_DIR") != ""
}

// applyEnvOverrides applies APIEXPLORER_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("APIEXPLORER_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("APIEXPLORER_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("APIEXPLORER_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("APIEXPLORER_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// UI configuration
	if v := os.Getenv("APIEXPLORER_BASE_URL"); v != "" {
		cfg.UI.BaseURL = v
	}
	if v := os.Getenv("APIEXPLORER_UI_FORMAT"); v != "" {
		cfg.UI.FormatTag = v
	}
	if v := os.Getenv("APIEXPLORER_LANGUAGE"); v != "" {
		cfg.UI.Language = v
	}
	if v := os.Getenv("APIEXPLORER_MESSAGES_FILE"); v != "" {
		cfg.UI.MessagesFile = v
	}

	// Components
	if v := os.Getenv("APIEXPLORER_COMPONENTS_DIR"); v != "" {
		cfg.Components.Dir = v
	}

	// Logging configuration
	if v := os.Getenv("APIEXPLORER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("APIEXPLORER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics configuration
	if v := os.Getenv("APIEXPLORER_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("APIEXPLORER_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}

	if cfg.UI.BaseURL == "" {
		cfg.UI.BaseURL = "http://zap"
	}
	if cfg.UI.FormatTag == "" {
		cfg.UI.FormatTag = "UI"
	}
	if cfg.UI.Language == "" {
		cfg.UI.Language = "en"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if cfg.Components.Dir == "" {
		return fmt.Errorf("components.dir is required")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	u, err := url.Parse(cfg.UI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ui.base_url must be an absolute URL, got %q", cfg.UI.BaseURL)
	}

	if strings.Contains(cfg.UI.FormatTag, "/") {
		return fmt.Errorf("ui.format_tag must be a single path segment, got %q", cfg.UI.FormatTag)
	}
	if reservedFormats[cfg.UI.FormatTag] {
		return fmt.Errorf("ui.format_tag %q collides with an output format", cfg.UI.FormatTag)
	}

	if _, err := language.Parse(cfg.UI.Language); err != nil {
		return fmt.Errorf("ui.language %q: %w", cfg.UI.Language, err)
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level %q: %w", cfg.Logging.Level, err)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", cfg.Metrics.Path)
	}

	return nil
}
