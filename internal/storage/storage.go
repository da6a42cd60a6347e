package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotFound is returned by Get when no value is stored under the key
var ErrKeyNotFound = errors.New("storage: key not found")

// KeyValueStore persists opaque values under string keys
type KeyValueStore interface {
	// Get returns the stored value or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// HealthChecker is implemented by remote backends that can verify connectivity
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Closer is implemented by backends holding connections
type Closer interface {
	Close() error
}

// Prefixed scopes every key of store under prefix
func Prefixed(store KeyValueStore, prefix string) KeyValueStore {
	return &prefixedStore{store: store, prefix: prefix}
}

type prefixedStore struct {
	store  KeyValueStore
	prefix string
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.prefix+key)
}

// VisitorPrefix is the key namespace of one visitor's persisted state
func VisitorPrefix(visitorID string) string {
	return fmt.Sprintf("visitor:%s:", visitorID)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("storage: empty key")
	}
	return nil
}
