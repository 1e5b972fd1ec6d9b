package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// CartStore holds the ordered, de-duplicated purchase list in memory and
// writes the full list through to durable storage on every mutation.
// Insertion order is preserved — it drives display and checkout-summary
// order.
type CartStore struct {
	storage ports.Storage
	log     zerolog.Logger

	mu    sync.RWMutex
	items []domain.CartItem
	subs  []func([]domain.CartItem)
}

func NewCartStore(storage ports.Storage, log zerolog.Logger) *CartStore {
	return &CartStore{storage: storage, log: log}
}

// Load restores the cart from durable storage; anything short of a
// well-formed record yields an empty cart, never an error.
func (s *CartStore) Load(ctx context.Context) {
	data, ok, err := s.storage.Read(ctx, cartKey)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn().Err(err).Msg("cart record unreadable, starting empty")
		}
		s.replace(nil)
		return
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn().Msg("cart record malformed, starting empty")
		_ = s.storage.Delete(ctx, cartKey)
		s.replace(nil)
		return
	}

	s.replace(dedupe(items))
}

// Add appends item to the end of the cart. Re-adding a product already in
// the cart returns domain.ErrDuplicateItem and changes nothing. When the
// write-through fails the in-memory append still stands and the caller gets
// domain.ErrPersistenceFailed — the shopper's click must not be lost to a
// storage hiccup, only reload durability is at risk.
func (s *CartStore) Add(ctx context.Context, item domain.CartItem) error {
	s.mu.Lock()
	for _, it := range s.items {
		if it.ProductID == item.ProductID {
			s.mu.Unlock()
			return domain.ErrDuplicateItem
		}
	}
	s.items = append(s.items, item)
	items, subs := snapshot(s.items), s.subs
	s.mu.Unlock()

	s.notify(subs, items)
	return s.persist(ctx, items)
}

// Remove drops the entry for productID. Removing an absent product is a
// no-op — removal is idempotent.
func (s *CartStore) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	idx := -1
	for i, it := range s.items {
		if it.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	items, subs := snapshot(s.items), s.subs
	s.mu.Unlock()

	s.notify(subs, items)
	return s.persist(ctx, items)
}

// Clear empties the cart after a completed checkout.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = nil
	subs := s.subs
	s.mu.Unlock()

	s.notify(subs, nil)
	return s.persist(ctx, nil)
}

// Items returns a snapshot of the cart in insertion order.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.items)
}

// Total recomputes the cart total on every call; nothing is cached, so it
// can never go stale relative to the item list.
func (s *CartStore) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

// Subscribe registers fn to run after every cart change.
func (s *CartStore) Subscribe(fn func([]domain.CartItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *CartStore) persist(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err == nil {
		err = s.storage.Write(ctx, cartKey, data)
	}
	if err != nil {
		s.log.Warn().Err(err).Int("items", len(items)).Msg("cart write-through failed")
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	return nil
}

func (s *CartStore) replace(items []domain.CartItem) {
	s.mu.Lock()
	s.items = items
	subs := s.subs
	s.mu.Unlock()

	s.notify(subs, snapshot(items))
}

func (s *CartStore) notify(subs []func([]domain.CartItem), items []domain.CartItem) {
	for _, fn := range subs {
		fn(items)
	}
}

func snapshot(items []domain.CartItem) []domain.CartItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

// dedupe keeps the first occurrence of each product ID. Stored carts written
// by this store never contain duplicates; this guards against hand-edited or
// pre-migration records.
func dedupe(items []domain.CartItem) []domain.CartItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, dup := seen[it.ProductID]; dup {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it)
	}
	return out
}
