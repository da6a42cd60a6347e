package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"zenmarket/internal/models"
	"zenmarket/internal/storage"
)

const (
	CartKey     = "zen_cart"
	WishlistKey = "zen_wishlist"
)

// StateRepository persists one visitor's cart and wishlist as JSON documents.
// The store is expected to be scoped to the visitor already.
type StateRepository struct {
	store  storage.KeyValueStore
	logger *slog.Logger
}

// NewStateRepository creates a new state repository
func NewStateRepository(store storage.KeyValueStore, logger *slog.Logger) *StateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateRepository{store: store, logger: logger}
}

// LoadCart returns the saved cart. Missing or malformed state yields an empty cart;
// only a backend failure is returned as an error.
func (r *StateRepository) LoadCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	found, err := r.load(ctx, CartKey, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.CartItem{}, nil
	}

	valid := items[:0]
	for _, item := range items {
		if item.ID == "" || item.Retreat == nil {
			r.logger.Warn("dropping malformed cart entry", "key", CartKey, "item_id", item.ID)
			continue
		}
		valid = append(valid, item)
	}
	return valid, nil
}

// SaveCart writes the full cart
func (r *StateRepository) SaveCart(ctx context.Context, items []models.CartItem) error {
	return r.save(ctx, CartKey, items)
}

// LoadWishlist returns the saved wishlist, with the same error contract as LoadCart
func (r *StateRepository) LoadWishlist(ctx context.Context) ([]*models.Retreat, error) {
	var retreats []*models.Retreat
	found, err := r.load(ctx, WishlistKey, &retreats)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*models.Retreat{}, nil
	}

	valid := retreats[:0]
	for _, retreat := range retreats {
		if retreat == nil || retreat.ID == "" {
			continue
		}
		valid = append(valid, retreat)
	}
	return valid, nil
}

// SaveWishlist writes the full wishlist
func (r *StateRepository) SaveWishlist(ctx context.Context, retreats []*models.Retreat) error {
	return r.save(ctx, WishlistKey, retreats)
}

// load reports found=false for a missing or malformed document. Any other
// store error is returned so callers never mistake an outage for an empty state.
func (r *StateRepository) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("ignoring malformed saved state", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (r *StateRepository) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
