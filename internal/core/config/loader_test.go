package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: http://api.internal\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://api.internal" {
		t.Errorf("unexpected base_url: %q", cfg.API.BaseURL)
	}
	if cfg.API.ErrorField != "message" {
		t.Errorf("expected error_field default message, got %q", cfg.API.ErrorField)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("expected timeout default 10s, got %v", cfg.API.Timeout)
	}
	if cfg.API.Retry.MaxAttempts != 3 {
		t.Errorf("expected retry default 3 attempts, got %d", cfg.API.Retry.MaxAttempts)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected cache backend default memory, got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.StaleTime != 30*time.Second {
		t.Errorf("expected stale_time default 30s, got %v", cfg.Cache.StaleTime)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port default 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("STOREKIT_TEST_DB_URL", "postgres://localhost:5432/storekit")

	path := writeConfig(t, `
api:
  error_field: detail
database:
  url: ${STOREKIT_TEST_DB_URL}
cache:
  backend: redis
  redis:
    url: redis://localhost:6379/0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.URL != "postgres://localhost:5432/storekit" {
		t.Errorf("env expansion failed: %q", cfg.Database.URL)
	}
	if cfg.API.ErrorField != "detail" {
		t.Errorf("expected error_field detail, got %q", cfg.API.ErrorField)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("expected cache backend redis, got %q", cfg.Cache.Backend)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [not: a: map\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
