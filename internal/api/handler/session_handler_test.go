package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

type stubAuthClient struct {
	loginFn func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthClient) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

// stubSessionStore implements ports.SessionStore over a plain field.
type stubSessionStore struct {
	session  domain.Session
	setErr   error
	setCalls int
}

func (s *stubSessionStore) Load(context.Context) {}

func (s *stubSessionStore) Set(_ context.Context, token string, user domain.User) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.session = domain.Session{Token: token, User: &user}
	return nil
}

func (s *stubSessionStore) Clear(context.Context) {
	s.session = domain.Session{}
}

func (s *stubSessionStore) Current() domain.Session { return s.session }

func (s *stubSessionStore) Subscribe(func(domain.Session)) {}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Login_Success(t *testing.T) {
	auth := &stubAuthClient{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:   "tok-1",
				User:    domain.User{ID: "u1", Name: "Alice", Role: domain.RoleRegular},
				Message: "welcome back",
			}, nil
		},
	}
	sessions := &stubSessionStore{}
	h := NewSessionHandler(auth, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if sessions.session.Token != "tok-1" {
		t.Fatalf("session not stored: %+v", sessions.session)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["authenticated"] != true {
		t.Fatalf("expected authenticated response, got %+v", resp)
	}
}

func TestSessionHandler_Login_ValidationFailure(t *testing.T) {
	h := NewSessionHandler(&stubAuthClient{}, &stubSessionStore{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"x"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestSessionHandler_Login_Rejected(t *testing.T) {
	auth := &stubAuthClient{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &stubSessionStore{}
	h := NewSessionHandler(auth, sessions)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"bad"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if sessions.setCalls != 0 {
		t.Fatalf("rejected login must not touch the session")
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	user := domain.User{ID: "u1", Role: domain.RoleRegular}
	sessions := &stubSessionStore{session: domain.Session{Token: "tok-1", User: &user}}
	h := NewSessionHandler(&stubAuthClient{}, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sessions.session.Authenticated() {
		t.Fatalf("session not cleared")
	}
}

func TestSessionHandler_Current(t *testing.T) {
	user := domain.User{ID: "u1", Name: "Alice", Role: domain.RoleAdmin}
	sessions := &stubSessionStore{session: domain.Session{Token: "tok-1", User: &user}}
	h := NewSessionHandler(&stubAuthClient{}, sessions)

	c, rec := newTestContext(t, http.MethodGet, "/auth/session", "")
	if err := h.Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["authenticated"] != true {
		t.Fatalf("expected authenticated, got %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "tok-1") {
		t.Fatalf("token must never leave the agent: %s", rec.Body.String())
	}
}
