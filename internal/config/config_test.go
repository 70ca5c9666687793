package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BindAddress != "0.0.0.0:8080" {
		t.Errorf("Expected default bind address 0.0.0.0:8080, got %s", cfg.BindAddress)
	}
	if cfg.Retention.PerHostEvents != 1000 {
		t.Errorf("Expected default per-host retention 1000, got %d", cfg.Retention.PerHostEvents)
	}
	if cfg.Retention.RecentWindow != 50 {
		t.Errorf("Expected default recent window 50, got %d", cfg.Retention.RecentWindow)
	}
	if cfg.HTTP.ReadTimeout != 30*time.Second {
		t.Errorf("Expected default read timeout 30s, got %v", cfg.HTTP.ReadTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	content := `
bind_address: "127.0.0.1:9090"
http:
  read_timeout: 10s
  write_timeout: 15s
retention:
  per_host_events: 250
  recent_window: 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("LOGLUMEN_SERVER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BindAddress != "127.0.0.1:9090" {
		t.Errorf("Expected bind address from file, got %s", cfg.BindAddress)
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second {
		t.Errorf("Expected read timeout 10s, got %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.Retention.PerHostEvents != 250 {
		t.Errorf("Expected per-host retention 250, got %d", cfg.Retention.PerHostEvents)
	}
	// Fields absent from the file keep their defaults
	if cfg.HTTP.IdleTimeout != 120*time.Second {
		t.Errorf("Expected default idle timeout, got %v", cfg.HTTP.IdleTimeout)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Setenv("LOGLUMEN_SERVER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	if err := os.WriteFile(path, []byte("bind_address: [not: valid"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("LOGLUMEN_SERVER_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOGLUMEN_BIND_ADDRESS", "127.0.0.1:7070")
	t.Setenv("LOGLUMEN_PER_HOST_EVENTS", "42")
	t.Setenv("LOGLUMEN_RECENT_WINDOW", "7")
	t.Setenv("LOGLUMEN_HTTP_READ_TIMEOUT", "5s")
	t.Setenv("LOGLUMEN_HTTP_WRITE_TIMEOUT", "6s")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	if cfg.BindAddress != "127.0.0.1:7070" {
		t.Errorf("Expected env bind address, got %s", cfg.BindAddress)
	}
	if cfg.Retention.PerHostEvents != 42 {
		t.Errorf("Expected per-host retention 42, got %d", cfg.Retention.PerHostEvents)
	}
	if cfg.Retention.RecentWindow != 7 {
		t.Errorf("Expected recent window 7, got %d", cfg.Retention.RecentWindow)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read timeout 5s, got %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout != 6*time.Second {
		t.Errorf("Expected write timeout 6s, got %v", cfg.HTTP.WriteTimeout)
	}
}

func TestEnvOverridesIgnoreInvalidValues(t *testing.T) {
	t.Setenv("LOGLUMEN_PER_HOST_EVENTS", "not-a-number")
	t.Setenv("LOGLUMEN_HTTP_READ_TIMEOUT", "soon")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	if cfg.Retention.PerHostEvents != 1000 {
		t.Errorf("Expected invalid override ignored, got %d", cfg.Retention.PerHostEvents)
	}
	if cfg.HTTP.ReadTimeout != 30*time.Second {
		t.Errorf("Expected invalid duration ignored, got %v", cfg.HTTP.ReadTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty bind address", func(c *Config) { c.BindAddress = "" }, true},
		{"zero per-host retention", func(c *Config) { c.Retention.PerHostEvents = 0 }, true},
		{"negative recent window", func(c *Config) { c.Retention.RecentWindow = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
