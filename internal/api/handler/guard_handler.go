package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/api/metrics"
	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// GuardHandler lets the UI's client-side router ask whether a navigation
// target may render before it swaps views.
type GuardHandler struct {
	guard ports.GuardEvaluator
}

func NewGuardHandler(guard ports.GuardEvaluator) *GuardHandler {
	return &GuardHandler{guard: guard}
}

// Evaluate runs one guard evaluation for the given level and path. The admin
// level blocks for the verification round trip; the response is always a
// terminal decision.
//
// @Summary      Evaluate a route guard
// @Tags         guard
// @Produce      json
// @Param        level  query  string  true   "public | authenticated | admin"
// @Param        path   query  string  false  "Navigation target being guarded"
// @Success      200  {object}  domain.Decision
// @Failure      400  {object}  map[string]string
// @Router       /guard [get]
func (h *GuardHandler) Evaluate(c echo.Context) error {
	level, ok := domain.ParseAccessLevel(c.QueryParam("level"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "level must be public, authenticated or admin")
	}

	path := c.QueryParam("path")
	if path == "" {
		path = "/"
	}

	decision := h.guard.Evaluate(c.Request().Context(), level, path)
	metrics.GuardEvaluationsTotal.WithLabelValues(string(level), string(decision.State)).Inc()

	return c.JSON(http.StatusOK, decision)
}
