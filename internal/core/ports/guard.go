package ports

import (
	"context"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

// AdminVerifier performs the single server round trip confirming that a
// bearer token really belongs to an admin account.
//
// A nil return grants. domain.ErrUnauthorized means the token itself was
// rejected (the caller clears the session); domain.ErrVerificationDenied
// means a negative answer for a live token; anything else is a transport
// failure, treated as denial without touching the session.
type AdminVerifier interface {
	VerifyAdmin(ctx context.Context, token string) error
}

// GuardEvaluator decides whether a navigation target may render.
type GuardEvaluator interface {
	// Evaluate runs a guard to completion, blocking only for the admin
	// verification round trip.
	Evaluate(ctx context.Context, level domain.AccessLevel, path string) domain.Decision
}
