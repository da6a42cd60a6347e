package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// FallbackStore pairs a remote primary with a local fallback.
// Writes go to both, reads prefer the primary.
type FallbackStore struct {
	primary  KeyValueStore
	fallback KeyValueStore
}

func WithFallback(primary, fallback KeyValueStore) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback}
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		slog.Warn("primary storage read failed, using fallback", "key", key, "error", err)
	}
	return s.fallback.Get(ctx, key)
}

// Set succeeds when at least one of the stores accepted the value
func (s *FallbackStore) Set(ctx context.Context, key string, value []byte) error {
	primaryErr := s.primary.Set(ctx, key, value)
	if primaryErr != nil {
		slog.Warn("primary storage write failed, using fallback", "key", key, "error", primaryErr)
	}

	fallbackErr := s.fallback.Set(ctx, key, value)
	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("both storages failed - primary: %v, fallback: %w", primaryErr, fallbackErr)
	}
	return nil
}

// Delete removes from both and fails only if both failed
func (s *FallbackStore) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	fallbackErr := s.fallback.Delete(ctx, key)

	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("both storages failed - primary: %v, fallback: %w", primaryErr, fallbackErr)
	}
	return nil
}

func (s *FallbackStore) HealthCheck(ctx context.Context) error {
	if hc, ok := s.primary.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (s *FallbackStore) Close() error {
	if c, ok := s.primary.(Closer); ok {
		return c.Close()
	}
	return nil
}
