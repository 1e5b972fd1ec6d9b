package domain

import "errors"

// ErrVerificationDenied is returned when the backend answers the admin check
// with a negative result that is not an outright 401 (e.g. a valid token
// belonging to a non-admin account). The session is left untouched.
var ErrVerificationDenied = errors.New("admin verification denied")

// AccessLevel is the protection required by a navigation target.
type AccessLevel string

const (
	LevelPublic        AccessLevel = "public"
	LevelAuthenticated AccessLevel = "authenticated"
	LevelAdmin         AccessLevel = "admin"
)

func ParseAccessLevel(s string) (AccessLevel, bool) {
	switch AccessLevel(s) {
	case LevelPublic, LevelAuthenticated, LevelAdmin:
		return AccessLevel(s), true
	}
	return "", false
}

// GuardState is the lifecycle of a single guard evaluation.
type GuardState string

const (
	GuardPending GuardState = "pending"
	GuardGranted GuardState = "granted"
	GuardDenied  GuardState = "denied"
)

// Redirect targets for denied guards. The UI layer's routes are part of the
// guard contract: denial for a missing login sends the shopper to LoginPath
// with the original path preserved, every other denial lands on HomePath.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the (terminal) outcome of evaluating a navigation target.
// RedirectTo is set only on denial; ReturnTo carries the originally requested
// path through a login redirect so the user lands back where they meant to go.
type Decision struct {
	State      GuardState  `json:"state"`
	Level      AccessLevel `json:"level"`
	RedirectTo string      `json:"redirect_to,omitempty"`
	ReturnTo   string      `json:"return_to,omitempty"`
}

// Granted reports whether the protected content may render.
func (d Decision) Granted() bool {
	return d.State == GuardGranted
}
