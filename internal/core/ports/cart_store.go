package ports

import (
	"context"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

// CartStore maintains the de-duplicated, insertion-ordered list of items the
// shopper intends to buy, written through to durable storage on every change.
type CartStore interface {
	// Load restores the cart from durable storage; malformed or absent data
	// yields an empty cart.
	Load(ctx context.Context)

	// Add appends item unless its ProductID is already present, in which
	// case domain.ErrDuplicateItem is returned and nothing changes. A
	// storage write failure surfaces as domain.ErrPersistenceFailed while
	// the in-memory append still stands.
	Add(ctx context.Context, item domain.CartItem) error

	// Remove drops the entry with the given product ID. Removing an absent
	// ID is a no-op; only persistence failures are reported.
	Remove(ctx context.Context, productID string) error

	// Clear empties the cart, typically after a successful payment.
	Clear(ctx context.Context) error

	// Items returns a snapshot in insertion order. Never performs I/O.
	Items() []domain.CartItem

	// Total recomputes sum(price × quantity) on every call.
	Total() float64

	// Subscribe registers fn to be called after every cart change.
	Subscribe(fn func(items []domain.CartItem))
}
