package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one embedded schema step, named NNN_description.sql
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationState pairs a migration with its applied flag
type MigrationState struct {
	Migration
	Applied bool
}

const schemaMigrationsDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Migrator applies the embedded migrations to one database
type Migrator struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

func NewMigrator(db *sql.DB, driver string, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{db: db, driver: NormalizeDriver(driver), logger: logger}
}

// LoadMigrations parses every embedded migration, ordered by version
func LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		version, label, ok := parseMigrationName(path.Base(name))
		if !ok {
			continue
		}
		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Version: version, Name: label, SQL: string(content)})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	return migrations, nil
}

func parseMigrationName(file string) (int, string, bool) {
	prefix, label, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || label == "" {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return 0, "", false
	}
	return version, label, true
}

// Up applies every pending migration, each in its own transaction, and
// reports how many were applied
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if _, err := m.db.ExecContext(ctx, schemaMigrationsDDL); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	states, err := m.Status(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, state := range states {
		if state.Applied {
			continue
		}
		m.logger.Info("applying migration", "version", state.Version, "name", state.Name, "driver", m.driver)
		if err := m.apply(ctx, state.Migration); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction for migration %d: %w", migration.Version, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}
	if _, err = tx.ExecContext(ctx, m.recordQuery(), migration.Version, migration.Name); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}
	return nil
}

func (m *Migrator) recordQuery() string {
	if m.driver == DriverSQLite {
		return "INSERT INTO schema_migrations (version, name) VALUES (?, ?)"
	}
	return "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)"
}

// Status returns every embedded migration with its applied flag.
// The tracking table must already exist.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to read applied migrations: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	migrations, err := LoadMigrations()
	if err != nil {
		return nil, err
	}

	states := make([]MigrationState, len(migrations))
	for i, migration := range migrations {
		states[i] = MigrationState{Migration: migration, Applied: applied[migration.Version]}
	}
	return states, nil
}
