// Package config provides configuration loading for the Loglumen server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/loglumen/loglumen-server/pkg/logger"
)

// DefaultConfigPath is consulted when LOGLUMEN_SERVER_CONFIG is not set.
const DefaultConfigPath = "config/server.yaml"

// Config holds the Loglumen server configuration.
type Config struct {
	// BindAddress is the host:port the HTTP server listens on
	BindAddress string `yaml:"bind_address"`

	// HTTP holds HTTP server timeouts
	HTTP HTTPConfig `yaml:"http"`

	// Retention holds in-memory retention limits
	Retention RetentionConfig `yaml:"retention"`
}

// HTTPConfig holds HTTP server timeouts.
type HTTPConfig struct {
	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the HTTP write timeout
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RetentionConfig holds the in-memory retention limits. Aggregate counters
// are cumulative and unaffected by these caps; they bound raw event copies.
type RetentionConfig struct {
	// PerHostEvents is the maximum raw events retained per host before
	// oldest-first eviction
	PerHostEvents int `yaml:"per_host_events"`

	// RecentWindow is the capacity of each category's recent-events window
	RecentWindow int `yaml:"recent_window"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BindAddress: "0.0.0.0:8080",
		HTTP: HTTPConfig{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Retention: RetentionConfig{
			PerHostEvents: 1000,
			RecentWindow:  50,
		},
	}
}

// Load resolves the server configuration. Resolution order: defaults, then a
// YAML file (LOGLUMEN_SERVER_CONFIG or config/server.yaml if present), then
// LOGLUMEN_* environment variables. A local .env file is honored first.
func Load() (*Config, error) {
	// Optional .env; silence is fine when absent
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	cfg := DefaultConfig()

	path := os.Getenv("LOGLUMEN_SERVER_CONFIG")
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		logger.Infof("Loaded configuration from %s", path)
	} else if explicit {
		// A file the operator pointed at must exist
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	LoadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv applies LOGLUMEN_* environment variable overrides.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("LOGLUMEN_BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("LOGLUMEN_PER_HOST_EVENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retention.PerHostEvents = n
		}
	}
	if v := os.Getenv("LOGLUMEN_RECENT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retention.RecentWindow = n
		}
	}
	if v := os.Getenv("LOGLUMEN_HTTP_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = d
		}
	}
	if v := os.Getenv("LOGLUMEN_HTTP_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = d
		}
	}
	if v := os.Getenv("LOGLUMEN_LOG_LEVEL"); v == "debug" {
		logger.SetDebug()
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		return fmt.Errorf("bind_address is required")
	}
	if c.Retention.PerHostEvents < 1 {
		return fmt.Errorf("retention.per_host_events must be at least 1, got %d", c.Retention.PerHostEvents)
	}
	if c.Retention.RecentWindow < 1 {
		return fmt.Errorf("retention.recent_window must be at least 1, got %d", c.Retention.RecentWindow)
	}
	return nil
}
