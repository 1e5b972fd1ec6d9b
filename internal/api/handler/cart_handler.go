package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/api/metrics"
	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// CartHandler exposes the cart store to the UI layer. Mutations require a
// logged-in session, matching the storefront's "login before you shop" rule;
// reading the cart is always allowed so the badge can render pre-login.
type CartHandler struct {
	cart     ports.CartStore
	sessions ports.SessionStore
}

func NewCartHandler(cart ports.CartStore, sessions ports.SessionStore) *CartHandler {
	return &CartHandler{cart: cart, sessions: sessions}
}

type addItemRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Photo       string  `json:"photo"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

type cartResponse struct {
	Items   []domain.CartItem `json:"items"`
	Total   float64           `json:"total"`
	Warning string            `json:"warning,omitempty"`
}

// List returns the cart snapshot in insertion order plus the running total.
//
// @Summary      List cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /cart [get]
func (h *CartHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, cartResponse{Items: h.cart.Items(), Total: h.cart.Total()})
}

// AddItem appends a product snapshot to the cart.
//
// @Summary      Add item to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Product snapshot"
// @Success      201   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	if !h.sessions.Current().Authenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, "please login to add items to cart")
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := domain.CartItem{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Photo:       req.Photo,
		Quantity:    req.Quantity,
	}

	err := h.cart.Add(c.Request().Context(), item)
	switch {
	case errors.Is(err, domain.ErrDuplicateItem):
		metrics.CartMutationsTotal.WithLabelValues("add", "duplicate").Inc()
		return err
	case errors.Is(err, domain.ErrPersistenceFailed):
		// The add took effect in memory; tell the UI, don't fail the click.
		metrics.CartMutationsTotal.WithLabelValues("add", "persistence_failed").Inc()
		return c.JSON(http.StatusCreated, cartResponse{
			Items:   h.cart.Items(),
			Total:   h.cart.Total(),
			Warning: "item added, but saving the cart for later failed",
		})
	case err != nil:
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("add", "ok").Inc()
	return c.JSON(http.StatusCreated, cartResponse{Items: h.cart.Items(), Total: h.cart.Total()})
}

// RemoveItem drops one product from the cart. Removing an absent product
// succeeds — removal is idempotent.
//
// @Summary      Remove item from cart
// @Tags         cart
// @Produce      json
// @Param        productID  path  string  true  "Product ID"
// @Success      200  {object}  cartResponse
// @Router       /cart/items/{productID} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	err := h.cart.Remove(c.Request().Context(), c.Param("productID"))
	if errors.Is(err, domain.ErrPersistenceFailed) {
		metrics.CartMutationsTotal.WithLabelValues("remove", "persistence_failed").Inc()
		return c.JSON(http.StatusOK, cartResponse{
			Items:   h.cart.Items(),
			Total:   h.cart.Total(),
			Warning: "item removed, but saving the cart for later failed",
		})
	}
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove", "ok").Inc()
	return c.JSON(http.StatusOK, cartResponse{Items: h.cart.Items(), Total: h.cart.Total()})
}

// Clear empties the cart. A storage write failure still clears the in-memory
// cart and surfaces as a warning, like the other mutations.
//
// @Summary      Clear cart
// @Tags         cart
// @Success      204
// @Success      200  {object}  cartResponse  "cleared in memory, persistence failed"
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	err := h.cart.Clear(c.Request().Context())
	if errors.Is(err, domain.ErrPersistenceFailed) {
		metrics.CartMutationsTotal.WithLabelValues("clear", "persistence_failed").Inc()
		return c.JSON(http.StatusOK, cartResponse{
			Items:   h.cart.Items(),
			Total:   h.cart.Total(),
			Warning: "cart cleared, but saving the cart for later failed",
		})
	}
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("clear", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}
