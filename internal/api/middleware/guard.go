package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/api/metrics"
	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// RequireLevel runs the route guard before the wrapped handlers. Denials
// respond with the full guard decision so the UI layer can follow the
// redirect; a login redirect is a 401, anything else a 403.
func RequireLevel(guard ports.GuardEvaluator, level domain.AccessLevel) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := guard.Evaluate(c.Request().Context(), level, c.Request().URL.Path)
			metrics.GuardEvaluationsTotal.WithLabelValues(string(level), string(decision.State)).Inc()

			if !decision.Granted() {
				status := http.StatusForbidden
				if decision.RedirectTo == domain.LoginPath {
					status = http.StatusUnauthorized
				}
				return c.JSON(status, decision)
			}
			return next(c)
		}
	}
}
