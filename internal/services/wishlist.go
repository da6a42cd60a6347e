package services

import (
	"context"
	"fmt"
	"sync"

	"zenmarket/internal/models"
)

// WishlistPersister saves and restores the full wishlist
type WishlistPersister interface {
	LoadWishlist(ctx context.Context) ([]*models.Retreat, error)
	SaveWishlist(ctx context.Context, retreats []*models.Retreat) error
}

// WishlistStore holds saved retreats keyed by retreat id
type WishlistStore struct {
	mu    sync.Mutex
	items []*models.Retreat
	repo  WishlistPersister
}

// NewWishlistStore restores the saved wishlist, dropping duplicate ids
func NewWishlistStore(ctx context.Context, repo WishlistPersister) (*WishlistStore, error) {
	saved, err := repo.LoadWishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore wishlist: %w", err)
	}

	seen := make(map[string]bool, len(saved))
	items := make([]*models.Retreat, 0, len(saved))
	for _, r := range saved {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		items = append(items, r)
	}

	return &WishlistStore{items: items, repo: repo}, nil
}

// ToggleWishlist removes the retreat if present, otherwise appends it.
// Returns true when the retreat is in the wishlist afterwards.
func (w *WishlistStore) ToggleWishlist(ctx context.Context, retreat *models.Retreat) (bool, error) {
	if retreat == nil {
		return false, fmt.Errorf("%w: retreat is required", models.ErrInvalidInput)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	added := true
	if i := w.indexOf(retreat.ID); i >= 0 {
		w.items = append(w.items[:i:i], w.items[i+1:]...)
		added = false
	} else {
		w.items = append(w.items, retreat)
	}

	if err := w.repo.SaveWishlist(ctx, w.items); err != nil {
		return added, fmt.Errorf("wishlist changed but could not be saved: %w", err)
	}
	return added, nil
}

// IsInWishlist reports membership by id
func (w *WishlistStore) IsInWishlist(retreatID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(retreatID) >= 0
}

// Items returns a copy of the saved retreats in insertion order
func (w *WishlistStore) Items() []*models.Retreat {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]*models.Retreat, len(w.items))
	copy(out, w.items)
	return out
}

func (w *WishlistStore) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *WishlistStore) indexOf(retreatID string) int {
	for i, r := range w.items {
		if r.ID == retreatID {
			return i
		}
	}
	return -1
}
