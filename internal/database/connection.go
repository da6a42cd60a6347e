package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type DB struct {
	*sql.DB
	Driver string
}

type Config struct {
	Driver   string // postgres (default) or sqlite3
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite database file
}

// NormalizeDriver maps user-facing driver names onto registered sql drivers
func NormalizeDriver(name string) string {
	switch name {
	case "sqlite", "sqlite3":
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

func NewConnection(config Config) (*DB, error) {
	driver := NormalizeDriver(config.Driver)

	var dsn string
	switch {
	case driver == DriverSQLite:
		if dir := filepath.Dir(config.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		dsn = config.Path + "?_busy_timeout=5000&_journal_mode=WAL"
	case config.URL != "":
		dsn = config.URL
	default:
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, Driver: driver}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate applies all pending migrations
func (db *DB) Migrate(ctx context.Context, logger *slog.Logger) (int, error) {
	return NewMigrator(db.DB, db.Driver, logger).Up(ctx)
}

// MigrationStatus reports every known migration and whether it has been applied
func (db *DB) MigrationStatus(ctx context.Context) ([]MigrationState, error) {
	return NewMigrator(db.DB, db.Driver, nil).Status(ctx)
}
