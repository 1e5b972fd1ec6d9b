package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/api/metrics"
	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// SessionHandler drives login/logout against the backend and exposes the
// current session to the UI layer.
type SessionHandler struct {
	auth     ports.AuthClient
	sessions ports.SessionStore
}

func NewSessionHandler(auth ports.AuthClient, sessions ports.SessionStore) *SessionHandler {
	return &SessionHandler{auth: auth, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Message       string       `json:"message,omitempty"`
}

// Login exchanges credentials with the backend and stores the session.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if err := h.sessions.Set(c.Request().Context(), res.Token, res.User); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	user := res.User
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &user,
		Message:       res.Message,
	})
}

// Logout clears the session. Safe to call when already logged out.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if h.sessions.Current().Authenticated() {
		metrics.SessionClearsTotal.WithLabelValues("logout").Inc()
	}
	h.sessions.Clear(c.Request().Context())
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: false, Message: "logged out"})
}

// Current reports the in-memory session state. The token itself never
// leaves the agent.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	sess := h.sessions.Current()
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: sess.Authenticated(),
		User:          sess.User,
	})
}
