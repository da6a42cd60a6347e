package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	appconfig "zenmarket/internal/config"
	"zenmarket/internal/database"
)

// Factory builds the configured key-value backend
type Factory struct {
	config *appconfig.Config
}

func NewFactory(cfg *appconfig.Config) *Factory {
	return &Factory{config: cfg}
}

// Create opens the backend named by STORAGE_DRIVER. Remote backends are
// health-checked; when unavailable the file store is used instead.
func (f *Factory) Create(ctx context.Context) (KeyValueStore, error) {
	driver := f.config.Storage.Driver

	switch driver {
	case "", "memory":
		slog.Info("using in-memory state storage")
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(f.config.Storage.Dir)
	}

	remote, err := f.createRemote(ctx, driver)
	if err == nil {
		err = f.healthCheck(ctx, remote)
	}

	if err != nil {
		if !f.config.Storage.UseFallback {
			return nil, err
		}
		slog.Warn("remote storage unavailable, using file storage only", "driver", driver, "error", err)
		if c, ok := remote.(Closer); ok {
			c.Close()
		}
		return NewFileStore(f.config.Storage.Dir)
	}

	slog.Info("remote state storage initialized", "driver", driver)
	if !f.config.Storage.UseFallback {
		return remote, nil
	}

	local, err := NewFileStore(f.config.Storage.Dir)
	if err != nil {
		return nil, err
	}
	return WithFallback(remote, local), nil
}

func (f *Factory) createRemote(ctx context.Context, driver string) (KeyValueStore, error) {
	switch driver {
	case "postgres", "sqlite", "sqlite3":
		dbCfg := f.config.Database
		dbCfg.Driver = driver
		db, err := database.NewConnection(database.Config{
			Driver:   dbCfg.Driver,
			URL:      dbCfg.URL,
			Host:     dbCfg.Host,
			Port:     dbCfg.Port,
			User:     dbCfg.User,
			Password: dbCfg.Password,
			DBName:   dbCfg.DBName,
			SSLMode:  dbCfg.SSLMode,
			Path:     dbCfg.Path,
		})
		if err != nil {
			return nil, err
		}
		if _, err := db.Migrate(ctx, slog.Default()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate state table: %w", err)
		}
		return NewSQLStore(db.DB, db.Driver), nil
	case "redis":
		store, err := NewRedisStoreFromURL(f.config.Redis.URL, f.config.Redis.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "s3", "r2":
		store, err := NewR2Store(ctx, f.config.R2)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func (f *Factory) healthCheck(ctx context.Context, store KeyValueStore) error {
	hc, ok := store.(HealthChecker)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.HealthCheck(ctx)
}
