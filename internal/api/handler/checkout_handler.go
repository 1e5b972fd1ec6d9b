package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/ports"
)

// CheckoutHandler drives the payment flow: gateway token, payment
// submission, and order history. The cart is cleared only after the backend
// confirms the payment.
type CheckoutHandler struct {
	checkout ports.CheckoutClient
	cart     ports.CartStore
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewCheckoutHandler(checkout ports.CheckoutClient, cart ports.CartStore, sessions ports.SessionStore, log zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, cart: cart, sessions: sessions, log: log}
}

type paymentRequest struct {
	Nonce string `json:"nonce" validate:"required"`
}

type paymentResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// PaymentToken fetches the client token the payment widget is initialised with.
//
// @Summary      Payment gateway client token
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /checkout/token [get]
func (h *CheckoutHandler) PaymentToken(c echo.Context) error {
	token, err := h.checkout.PaymentToken(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"client_token": token})
}

// SubmitPayment sends the gateway nonce with the current cart snapshot and
// clears the cart once the backend confirms.
//
// @Summary      Submit payment
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      paymentRequest  true  "Gateway nonce"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	sess := h.sessions.Current()
	if !sess.Authenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, "please login to checkout")
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := h.cart.Items()
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	if err := h.checkout.SubmitPayment(c.Request().Context(), sess.Token, req.Nonce, items); err != nil {
		return err
	}

	// Payment confirmed; a failed cart clear only costs a stale record on disk.
	if err := h.cart.Clear(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("cart clear after payment failed")
	}

	h.log.Info().Int("items", len(items)).Msg("payment completed")
	return c.JSON(http.StatusOK, paymentResponse{OK: true, Message: "payment completed"})
}

// Orders lists the shopper's order history.
//
// @Summary      Order history
// @Tags         checkout
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /orders [get]
func (h *CheckoutHandler) Orders(c echo.Context) error {
	sess := h.sessions.Current()
	if !sess.Authenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, "please login to view orders")
	}

	orders, err := h.checkout.Orders(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}
