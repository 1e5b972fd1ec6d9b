package ports

import (
	"context"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

// SessionStore is the single source of truth for the device's
// authentication state, kept consistent between memory and durable storage.
type SessionStore interface {
	// Load restores the session from durable storage. Malformed or absent
	// data yields an empty session; Load never fails.
	Load(ctx context.Context)

	// Set replaces the session and writes it through to storage. Returns
	// domain.ErrInvalidSessionData when token or the user record is
	// incomplete, leaving the prior session untouched.
	Set(ctx context.Context, token string, user domain.User) error

	// Clear resets to the empty session and removes the durable record.
	// Idempotent.
	Clear(ctx context.Context)

	// Current returns the in-memory session. Never performs I/O.
	Current() domain.Session

	// Subscribe registers fn to be called after every session change.
	Subscribe(fn func(domain.Session))
}
