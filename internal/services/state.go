package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"zenmarket/internal/models"
	"zenmarket/internal/repositories"
	"zenmarket/internal/storage"
)

const (
	DefaultStateIdleTTL     = 30 * time.Minute
	DefaultMaxVisitors      = 10000
	DefaultStateLoadTimeout = 10 * time.Second
)

// AppState is one visitor's cart and wishlist
type AppState struct {
	VisitorID string
	Cart      *CartStore
	Wishlist  *WishlistStore
}

type cachedState struct {
	state *AppState
	seen  time.Time
}

// StateOption tunes a StateManager
type StateOption func(*StateManager)

// WithIdleTTL sets how long an untouched visitor stays cached
func WithIdleTTL(ttl time.Duration) StateOption {
	return func(m *StateManager) {
		if ttl > 0 {
			m.idleTTL = ttl
		}
	}
}

// WithMaxVisitors caps the number of cached visitors. The least recently seen is evicted first.
func WithMaxVisitors(n int) StateOption {
	return func(m *StateManager) {
		if n > 0 {
			m.maxVisitors = n
		}
	}
}

// StateManager lazily loads and caches AppState per visitor.
// Storage reads happen outside the cache lock and at most once per visitor at a time.
type StateManager struct {
	store       storage.KeyValueStore
	logger      *slog.Logger
	idleTTL     time.Duration
	maxVisitors int
	loadTimeout time.Duration
	now         func() time.Time

	mu    sync.Mutex
	cache *lru.Cache[string, cachedState]
	loads singleflight.Group
}

func NewStateManager(store storage.KeyValueStore, logger *slog.Logger, opts ...StateOption) *StateManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &StateManager{
		store:       store,
		logger:      logger,
		idleTTL:     DefaultStateIdleTTL,
		maxVisitors: DefaultMaxVisitors,
		loadTimeout: DefaultStateLoadTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	// size is always positive here, the only error lru.New reports
	m.cache, _ = lru.New[string, cachedState](m.maxVisitors)
	return m
}

// ForVisitor returns the cached state or restores it from storage.
// A failed restore is returned and never cached, so saved state is not replaced by an empty one.
func (m *StateManager) ForVisitor(ctx context.Context, visitorID string) (*AppState, error) {
	if visitorID == "" {
		return nil, models.ErrVisitorRequired
	}

	if state, ok := m.touch(visitorID); ok {
		return state, nil
	}

	// the load is shared by concurrent requests, so it must outlive any one of them
	loadCtx := context.WithoutCancel(ctx)
	ch := m.loads.DoChan(visitorID, func() (any, error) {
		if state, ok := m.touch(visitorID); ok {
			return state, nil
		}
		return m.restore(loadCtx, visitorID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*AppState), nil
	}
}

func (m *StateManager) restore(ctx context.Context, visitorID string) (*AppState, error) {
	ctx, cancel := context.WithTimeout(ctx, m.loadTimeout)
	defer cancel()

	logger := m.logger.With("visitor", visitorID)
	repo := repositories.NewStateRepository(
		storage.Prefixed(m.store, storage.VisitorPrefix(visitorID)),
		logger,
	)

	cart, err := NewCartStore(ctx, repo)
	if err != nil {
		logger.Warn("failed to restore visitor state", "error", err)
		return nil, err
	}
	wishlist, err := NewWishlistStore(ctx, repo)
	if err != nil {
		logger.Warn("failed to restore visitor state", "error", err)
		return nil, err
	}

	state := &AppState{VisitorID: visitorID, Cart: cart, Wishlist: wishlist}

	m.mu.Lock()
	m.cache.Add(visitorID, cachedState{state: state, seen: m.now()})
	m.mu.Unlock()

	logger.Debug("visitor state restored",
		"cart_items", cart.TotalItems(),
		"wishlist_items", wishlist.Count(),
	)
	return state, nil
}

// touch returns a cached state and marks it as seen now
func (m *StateManager) touch(visitorID string) (*AppState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.cache.Get(visitorID)
	if !ok {
		return nil, false
	}
	entry.seen = m.now()
	m.cache.Add(visitorID, entry)
	return entry.state, true
}

// Run evicts idle visitors every interval until ctx is done
func (m *StateManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.sweep(); n > 0 {
				m.logger.Debug("evicted idle visitor state", "visitors", n)
			}
		}
	}
}

// sweep drops entries not seen within the idle TTL. The cache is ordered by
// last access, so it stops at the first fresh entry.
func (m *StateManager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTTL)
	evicted := 0
	for {
		key, entry, ok := m.cache.GetOldest()
		if !ok || entry.seen.After(cutoff) {
			return evicted
		}
		m.cache.Remove(key)
		evicted++
	}
}

// Visitors is the number of cached visitor states
func (m *StateManager) Visitors() int {
	return m.cache.Len()
}
