// Package backend is the REST client for the remote commerce API. It owns
// base-URL prefixing, bearer-token attachment, timeouts, and the mapping of
// HTTP 401 onto domain.ErrUnauthorized so callers can react uniformly.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the commerce backend. The zero value is not usable; build
// one with New.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

var (
	_ ports.AuthClient     = (*Client)(nil)
	_ ports.AdminVerifier  = (*Client)(nil)
	_ ports.CatalogClient  = (*Client)(nil)
	_ ports.CheckoutClient = (*Client)(nil)
)

// New creates a Client targeting baseURL (e.g. "https://shop.example.com/api/v1").
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Login exchanges credentials for a token and profile. A rejected login
// (401 or success=false) maps to domain.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if isStatus(err, http.StatusUnauthorized) || isStatus(err, http.StatusNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.LoginResult{
		Token:   resp.Token,
		User:    resp.User.toDomain(),
		Message: resp.Message,
	}, nil
}

// VerifyAdmin performs the single admin-check round trip. 401 surfaces as
// domain.ErrUnauthorized; 200 with ok=false as domain.ErrVerificationDenied.
func (c *Client) VerifyAdmin(ctx context.Context, token string) error {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/admin-auth", token, nil, &resp); err != nil {
		if isStatus(err, http.StatusForbidden) {
			return domain.ErrVerificationDenied
		}
		return err
	}
	if !resp.OK {
		return domain.ErrVerificationDenied
	}
	return nil
}

// statusError carries a non-2xx response through the error chain.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend: unexpected status %d: %s", e.status, e.body)
}

func isStatus(err error, status int) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == status
}

// do issues one request. token, when non-empty, is attached as a bearer
// credential. out, when non-nil, receives the decoded JSON body. A 401 on an
// authenticated call is returned as domain.ErrUnauthorized directly.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("backend request failed")
		return &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s: %w", path, err)
	}
	return nil
}
