package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// Storage keys for the two durable records. "auth" and "cart" match the
// record names the web storefront used, so a migrated state dir keeps working.
const (
	sessionKey = "auth"
	cartKey    = "cart"
)

// SessionStore keeps the device's authentication state consistent between
// memory and durable storage. All reads are served from memory; every
// mutation writes through before returning.
type SessionStore struct {
	storage ports.Storage
	log     zerolog.Logger

	mu      sync.RWMutex
	current domain.Session
	subs    []func(domain.Session)
}

func NewSessionStore(storage ports.Storage, log zerolog.Logger) *SessionStore {
	return &SessionStore{storage: storage, log: log}
}

// Load restores the session from durable storage. Absent, unreadable, or
// malformed records degrade to the empty session — losing a session only
// forces a re-login, so no failure propagates. A stored token whose JWT exp
// claim has already passed is dropped eagerly instead of bouncing the first
// authenticated call off a 401.
func (s *SessionStore) Load(ctx context.Context) {
	data, ok, err := s.storage.Read(ctx, sessionKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session record unreadable, starting empty")
		s.replace(domain.Session{})
		return
	}
	if !ok {
		s.replace(domain.Session{})
		return
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.WellFormed() {
		s.log.Warn().Msg("session record malformed, starting empty")
		_ = s.storage.Delete(ctx, sessionKey)
		s.replace(domain.Session{})
		return
	}

	if sess.Authenticated() && tokenExpired(sess.Token) {
		s.log.Info().Msg("stored token expired, starting empty")
		_ = s.storage.Delete(ctx, sessionKey)
		s.replace(domain.Session{})
		return
	}

	s.replace(sess)
}

// Set replaces the session with the given token and user, writing through to
// storage. Incomplete input returns domain.ErrInvalidSessionData and leaves
// the prior session untouched. A storage write failure is logged only:
// the in-memory session still applies and the shopper can keep working.
func (s *SessionStore) Set(ctx context.Context, token string, user domain.User) error {
	if token == "" || user.ID == "" || !domain.ValidRole(user.Role) {
		return domain.ErrInvalidSessionData
	}

	sess := domain.Session{Token: token, User: &user}

	data, err := json.Marshal(sess)
	if err == nil {
		err = s.storage.Write(ctx, sessionKey, data)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("session write-through failed")
	}

	s.replace(sess)
	return nil
}

// Clear resets to the empty session and removes the durable record.
// Clearing an already-empty session is a no-op.
func (s *SessionStore) Clear(ctx context.Context) {
	s.mu.Lock()
	if !s.current.Authenticated() {
		s.mu.Unlock()
		return
	}
	s.current = domain.Session{}
	subs := s.subs
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, sessionKey); err != nil {
		s.log.Warn().Err(err).Msg("session record delete failed")
	}

	for _, fn := range subs {
		fn(domain.Session{})
	}
}

// Current returns the in-memory session.
func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to run after every session change.
func (s *SessionStore) Subscribe(fn func(domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *SessionStore) replace(sess domain.Session) {
	s.mu.Lock()
	s.current = sess
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// tokenExpired inspects the exp claim without verifying the signature — the
// agent never holds the signing key; real validation is the backend's job.
// Tokens that do not parse as JWTs stay opaque and are assumed live.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
