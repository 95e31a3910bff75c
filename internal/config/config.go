// Package config provides application configuration loaded from
// environment variables (optionally via a .env file loaded in main).
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8080"`
	ReadTimeout  int    `envconfig:"SERVER_READ_TIMEOUT" default:"15"`
	WriteTimeout int    `envconfig:"SERVER_WRITE_TIMEOUT" default:"15"`
	IdleTimeout  int    `envconfig:"SERVER_IDLE_TIMEOUT" default:"60"`
}

// DatabaseConfig holds the connection settings. The DSN selects the
// driver: postgres:// URLs use the postgres driver, anything else is
// treated as a SQLite path.
type DatabaseConfig struct {
	DSN string `envconfig:"DATABASE_DSN" default:"instance/app.db"`
}

// IsPostgres reports whether the DSN points at a PostgreSQL server.
func (d DatabaseConfig) IsPostgres() bool {
	lower := strings.ToLower(strings.TrimSpace(d.DSN))
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env           string `envconfig:"APP_ENV" default:"development"`
	SessionSecret string `envconfig:"SECRET_KEY" default:"cambia-esta-clave-en-produccion"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	Migrations    bool   `envconfig:"MIGRATIONS" default:"true"`
}

// IsDev reports whether the app runs in development mode.
func (a AppConfig) IsDev() bool { return strings.EqualFold(a.Env, "development") }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
