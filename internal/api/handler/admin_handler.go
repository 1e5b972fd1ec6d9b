package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// AdminHandler proxies catalog mutations for the admin screens. Routes using
// it are wrapped in the admin guard middleware, so by the time a request
// lands here the session has passed the server-side admin check; the backend
// still enforces authorisation on its end with the forwarded token.
type AdminHandler struct {
	catalog  ports.CatalogClient
	checkout ports.CheckoutClient
	sessions ports.SessionStore
}

func NewAdminHandler(catalog ports.CatalogClient, checkout ports.CheckoutClient, sessions ports.SessionStore) *AdminHandler {
	return &AdminHandler{catalog: catalog, checkout: checkout, sessions: sessions}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateProduct adds a catalog entry.
//
// @Summary      Create product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateProduct(c.Request().Context(), h.sessions.Current().Token, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateProduct rewrites a catalog entry.
//
// @Summary      Update product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        productID  path  string                true  "Product ID"
// @Param        body       body  createProductRequest  true  "Product details"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/products/{productID} [put]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.catalog.UpdateProduct(c.Request().Context(), h.sessions.Current().Token, domain.Product{
		ID:          c.Param("productID"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes a catalog entry.
//
// @Summary      Delete product
// @Tags         admin
// @Param        productID  path  string  true  "Product ID"
// @Success      204
// @Router       /admin/products/{productID} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), h.sessions.Current().Token, c.Param("productID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateCategory adds a product category.
//
// @Summary      Create category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createCategoryRequest  true  "Category name"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Router       /admin/categories [post]
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateCategory(c.Request().Context(), h.sessions.Current().Token, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateCategory renames a product category.
//
// @Summary      Update category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        categoryID  path  string                 true  "Category ID"
// @Param        body        body  createCategoryRequest  true  "New category name"
// @Success      200  {object}  domain.Category
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/categories/{categoryID} [put]
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.catalog.UpdateCategory(c.Request().Context(), h.sessions.Current().Token, c.Param("categoryID"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCategory removes a product category.
//
// @Summary      Delete category
// @Tags         admin
// @Param        categoryID  path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/categories/{categoryID} [delete]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), h.sessions.Current().Token, c.Param("categoryID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Orders lists every order in the store.
//
// @Summary      All orders
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	orders, err := h.checkout.AllOrders(c.Request().Context(), h.sessions.Current().Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order to a new status.
//
// @Summary      Update order status
// @Tags         admin
// @Accept       json
// @Param        orderID  path  string              true  "Order ID"
// @Param        body     body  orderStatusRequest  true  "New status"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/orders/{orderID}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.checkout.UpdateOrderStatus(c.Request().Context(), h.sessions.Current().Token, c.Param("orderID"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
