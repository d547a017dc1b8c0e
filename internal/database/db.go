// Package database opens the backing store and owns schema migration. SQLite
// is the default for single-node deployments; postgres and mysql are for
// shared installations.
package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Config describes the connection. DSN, when set, overrides the individual
// host fields for every driver.
type Config struct {
	Driver   string
	Path     string // sqlite file location
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	Options  map[string]string
}

var openers = map[string]func(Config) (*gorm.DB, error){
	"sqlite":     openSQLite,
	"postgres":   openPostgres,
	"postgresql": openPostgres,
	"mysql":      openMySQL,
}

// Open connects using the configured driver, defaulting to sqlite.
func Open(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = "sqlite"
	}

	opener, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	return opener(cfg)
}

// Migrate applies the schema at start-up.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
