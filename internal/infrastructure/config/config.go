package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Sync      SyncConfig
	Auth      AuthConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StoreConfig holds persistence store configuration.
type StoreConfig struct {
	// RemoteURL points the sync coordinator at an external persistence
	// service. Empty means persist through the embedded SQLite store.
	RemoteURL  string `envconfig:"STORE_REMOTE_URL" default:""`
	SQLitePath string `envconfig:"STORE_SQLITE_PATH" default:"gridboard.db"`
	BackupDir  string `envconfig:"STORE_BACKUP_DIR" default:""`
}

// SyncConfig holds debounced sync configuration.
type SyncConfig struct {
	Debounce time.Duration `envconfig:"SYNC_DEBOUNCE" default:"2s"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"1h"`
	BcryptCost int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5000",
			Host: "0.0.0.0",
		},
		Store: StoreConfig{
			SQLitePath: "gridboard.db",
		},
		Sync: SyncConfig{
			Debounce: 2 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:   time.Hour,
			BcryptCost: 10,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
