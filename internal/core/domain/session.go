package domain

import "errors"

const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
)

var ErrInvalidSessionData = errors.New("invalid session data")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthorized marks a 401 from any authenticated backend endpoint. It is
// distinct from generic transport failure because it forces a session clear.
var ErrUnauthorized = errors.New("unauthorized")

// User models the authenticated shopper profile as returned by the backend.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Session is the device's authentication state: a bearer token plus the
// profile it belongs to. Token is non-empty exactly when User is present;
// a record violating that is treated as no session at all.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the locally cached profile claims the admin role.
// Server-side verification is still required before trusting it.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}

// WellFormed reports whether the record satisfies the no-partial-session rule.
func (s Session) WellFormed() bool {
	if s.Token == "" {
		return s.User == nil
	}
	return s.User != nil && s.User.ID != ""
}

func ValidRole(role string) bool {
	return role == RoleRegular || role == RoleAdmin
}
