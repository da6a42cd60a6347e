package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore keeps values in the kv_entries table created by the migration runner.
// Works against postgres (lib/pq) and sqlite (go-sqlite3).
type SQLStore struct {
	db      *sql.DB
	queries sqlQueries
}

type sqlQueries struct {
	get    string
	upsert string
	delete string
}

var postgresQueries = sqlQueries{
	get: `SELECT value FROM kv_entries WHERE key = $1`,
	upsert: `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete: `DELETE FROM kv_entries WHERE key = $1`,
}

var sqliteQueries = sqlQueries{
	get: `SELECT value FROM kv_entries WHERE key = ?`,
	upsert: `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete: `DELETE FROM kv_entries WHERE key = ?`,
}

// NewSQLStore wraps an open database. driver is "postgres" or "sqlite3".
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	queries := postgresQueries
	if driver == "sqlite3" || driver == "sqlite" {
		queries = sqliteQueries
	}
	return &SQLStore{db: db, queries: queries}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.queries.upsert, key, string(value)); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.queries.delete, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
