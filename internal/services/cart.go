package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"zenmarket/internal/models"
)

// CartPersister saves and restores the full cart list
type CartPersister interface {
	LoadCart(ctx context.Context) ([]models.CartItem, error)
	SaveCart(ctx context.Context, items []models.CartItem) error
}

// CartStore holds one visitor's pending selections.
// Every mutation writes the full list back; a failed write never undoes the mutation.
type CartStore struct {
	mu    sync.Mutex
	items []models.CartItem
	repo  CartPersister
}

// NewCartStore restores the saved cart, or starts empty when nothing was saved
func NewCartStore(ctx context.Context, repo CartPersister) (*CartStore, error) {
	items, err := repo.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore cart: %w", err)
	}
	return &CartStore{items: items, repo: repo}, nil
}

// AddToCart appends a new item with a fresh id. Repeated (retreat, date) pairs are never merged.
func (c *CartStore) AddToCart(ctx context.Context, retreat *models.Retreat, date string, guests int) (models.CartItem, error) {
	if retreat == nil || guests < 1 || date == "" {
		return models.CartItem{}, fmt.Errorf("%w: retreat, date and at least one guest are required", models.ErrInvalidInput)
	}

	item := models.CartItem{
		ID:           newCartItemID(retreat.ID, date),
		Retreat:      retreat,
		SelectedDate: date,
		Guests:       guests,
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	err := c.persist(ctx)
	c.mu.Unlock()

	return item, err
}

// RemoveFromCart removes exactly the item with the given id. Unknown ids are a no-op.
func (c *CartStore) RemoveFromCart(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID == itemID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return c.persist(ctx)
		}
	}
	return nil
}

// RemoveItems drops every item whose id is listed and keeps the rest in order
func (c *CartStore) RemoveItems(ctx context.Context, itemIDs []string) error {
	drop := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if !drop[item.ID] {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(c.items) {
		return nil
	}
	c.items = kept
	return c.persist(ctx)
}

// ClearCart empties the cart
func (c *CartStore) ClearCart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []models.CartItem{}
	return c.persist(ctx)
}

// Items returns a copy of the current items in insertion order
func (c *CartStore) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the number of line items, not the guest count
func (c *CartStore) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subtotal sums price times guests over all items
func (c *CartStore) Subtotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Summary derives the cart totals with the given service fee, charged only when the cart is non-empty
func (c *CartStore) Summary(serviceFee int) models.CartSummary {
	items := c.Items()

	subtotal := 0
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	fee := 0
	if len(items) > 0 {
		fee = serviceFee
	}

	return models.CartSummary{
		Items:      items,
		TotalItems: len(items),
		Subtotal:   subtotal,
		ServiceFee: fee,
		Total:      subtotal + fee,
	}
}

// persist must be called with mu held
func (c *CartStore) persist(ctx context.Context) error {
	if err := c.repo.SaveCart(ctx, c.items); err != nil {
		return fmt.Errorf("cart changed but could not be saved: %w", err)
	}
	return nil
}

func newCartItemID(retreatID, date string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%s-%s", retreatID, date, suffix)
}
