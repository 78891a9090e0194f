package config

import (
	"time"

	"github.com/vietddude/storekit/internal/infra/storage/postgres"
	"github.com/vietddude/storekit/internal/query/redistore"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API      APIConfig       `yaml:"api"`
	Cache    CacheConfig     `yaml:"cache"`
	Server   ServerConfig    `yaml:"server"`
	Database postgres.Config `yaml:"database"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// APIConfig holds client-side settings for the backend the CLI talks to.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// ErrorField names the key recognized error bodies carry: "message" or
	// "detail". One per deployment, matching the backend.
	ErrorField string      `yaml:"error_field"`
	Retry      RetryConfig `yaml:"retry"`
}

// RetryConfig holds transient-failure retry settings.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	Backend   string           `yaml:"backend"` // memory, redis
	StaleTime time.Duration    `yaml:"stale_time"`
	Redis     redistore.Config `yaml:"redis"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
