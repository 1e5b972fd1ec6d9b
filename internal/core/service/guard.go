package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// Guard decides whether a navigation target may render, given its required
// access level and the current session.
//
// public and authenticated levels resolve synchronously from local state —
// token presence is enough for ordinary authenticated views because the
// backend re-checks the token on every API call anyway. Only the admin level
// costs a server round trip, and only after the free local checks (token
// present, cached role is admin) have passed.
type Guard struct {
	sessions ports.SessionStore
	verifier ports.AdminVerifier
	log      zerolog.Logger
}

func NewGuard(sessions ports.SessionStore, verifier ports.AdminVerifier, log zerolog.Logger) *Guard {
	return &Guard{sessions: sessions, verifier: verifier, log: log}
}

// Evaluation is one in-flight guard run. It starts pending (unless the
// outcome was decidable locally) and resolves exactly once.
type Evaluation struct {
	mu       sync.Mutex
	decision domain.Decision
	done     chan struct{}
}

func resolvedEvaluation(d domain.Decision) *Evaluation {
	e := &Evaluation{decision: d, done: make(chan struct{})}
	close(e.done)
	return e
}

// State returns the evaluation's current state; GuardPending until the
// verification round trip resolves.
func (e *Evaluation) State() domain.GuardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.decision.State
}

// Wait blocks until the evaluation resolves or ctx expires. Expiry counts as
// denial — the caller may re-navigate to retry from a clean state.
func (e *Evaluation) Wait(ctx context.Context) domain.Decision {
	select {
	case <-e.done:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.decision
	case <-ctx.Done():
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.decision.State == domain.GuardPending {
			return domain.Decision{State: domain.GuardDenied, Level: e.decision.Level, RedirectTo: domain.HomePath}
		}
		return e.decision
	}
}

func (e *Evaluation) resolve(d domain.Decision) {
	e.mu.Lock()
	e.decision = d
	e.mu.Unlock()
	close(e.done)
}

// Evaluate runs a guard to completion. It blocks only for the admin
// verification round trip.
func (g *Guard) Evaluate(ctx context.Context, level domain.AccessLevel, path string) domain.Decision {
	return g.Start(ctx, level, path).Wait(ctx)
}

// Start begins an evaluation and returns immediately. Levels decidable from
// local state come back already resolved; the admin round trip runs in the
// background and the returned Evaluation stays pending until it lands.
func (g *Guard) Start(ctx context.Context, level domain.AccessLevel, path string) *Evaluation {
	sess := g.sessions.Current()

	switch level {
	case domain.LevelPublic:
		return resolvedEvaluation(domain.Decision{State: domain.GuardGranted, Level: level})

	case domain.LevelAuthenticated:
		if !sess.Authenticated() {
			return resolvedEvaluation(g.denyToLogin(level, path))
		}
		return resolvedEvaluation(domain.Decision{State: domain.GuardGranted, Level: level})

	case domain.LevelAdmin:
		if !sess.Authenticated() {
			return resolvedEvaluation(g.denyToLogin(level, path))
		}
		if !sess.IsAdmin() {
			// Known non-admin: deny without spending a round trip.
			return resolvedEvaluation(domain.Decision{State: domain.GuardDenied, Level: level, RedirectTo: domain.HomePath})
		}

		e := &Evaluation{
			decision: domain.Decision{State: domain.GuardPending, Level: level},
			done:     make(chan struct{}),
		}
		go g.verify(ctx, e, sess.Token, path)
		return e

	default:
		// Unknown levels never grant.
		return resolvedEvaluation(domain.Decision{State: domain.GuardDenied, Level: level, RedirectTo: domain.HomePath})
	}
}

// verify completes an admin evaluation. The evaluation was issued for a
// specific token; if the session's token changed while the call was in
// flight (logout, re-login), the response is discarded so a slow answer for
// a dead credential can never resurrect access.
func (g *Guard) verify(ctx context.Context, e *Evaluation, issuedToken, path string) {
	err := g.verifier.VerifyAdmin(ctx, issuedToken)

	if current := g.sessions.Current(); current.Token != issuedToken {
		g.log.Info().Str("path", path).Msg("session changed mid-verification, discarding result")
		e.resolve(g.denyToLogin(domain.LevelAdmin, path))
		return
	}

	switch {
	case err == nil:
		e.resolve(domain.Decision{State: domain.GuardGranted, Level: domain.LevelAdmin})

	case errors.Is(err, domain.ErrUnauthorized):
		// Dead token: force re-authentication rather than retries against it.
		g.log.Info().Str("path", path).Msg("token rejected by admin check, clearing session")
		g.sessions.Clear(ctx)
		e.resolve(g.denyToLogin(domain.LevelAdmin, path))

	case errors.Is(err, domain.ErrVerificationDenied):
		e.resolve(domain.Decision{State: domain.GuardDenied, Level: domain.LevelAdmin, RedirectTo: domain.HomePath})

	default:
		// Transport failure, timeout included. Single-shot: deny and let the
		// user re-navigate.
		g.log.Warn().Err(err).Str("path", path).Msg("admin verification failed")
		e.resolve(domain.Decision{State: domain.GuardDenied, Level: domain.LevelAdmin, RedirectTo: domain.HomePath})
	}
}

func (g *Guard) denyToLogin(level domain.AccessLevel, path string) domain.Decision {
	return domain.Decision{
		State:      domain.GuardDenied,
		Level:      level,
		RedirectTo: domain.LoginPath,
		ReturnTo:   path,
	}
}
