// Package db owns the database connection, schema migration and seed data.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/santiagosossaa1/facturas/internal/config"
)

// Open connects using the configured DSN. SQLite is the default;
// postgres DSNs switch drivers. Postgres connections are retried a few
// times to let the server come up first.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	if cfg.IsPostgres() {
		var conn *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			conn, err = gorm.Open(postgres.Open(cfg.DSN), gcfg)
			if err == nil {
				return conn, nil
			}
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	dsn := cfg.DSN
	if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
		_ = os.MkdirAll(dir, 0o755)
	}
	conn, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// Best effort: referential integrity is off by default in SQLite.
	_ = conn.Exec("PRAGMA foreign_keys=ON").Error
	return conn, nil
}
