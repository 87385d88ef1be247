// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted in STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all server settings, populated from the environment. A .env
// file, if present, is loaded before parsing (godotenv autoload in main).
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StoreBackend selects where sessions persist: file, postgres or redis.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`

	// DataDir is the file backend's directory, created lazily on first save.
	DataDir string `env:"DATA_DIR" envDefault:"games"`

	// DatabaseURL is the postgres backend's DSN.
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
