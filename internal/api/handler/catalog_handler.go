package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kartify/storefront-agent/internal/core/domain"
	"github.com/kartify/storefront-agent/internal/core/ports"
)

// CatalogHandler proxies read access to the remote product catalog so the
// UI talks to a single local origin.
type CatalogHandler struct {
	catalog ports.CatalogClient
}

func NewCatalogHandler(catalog ports.CatalogClient) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Products returns one catalog page.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        page  query  int  false  "Page number, 1-based"
// @Success      200  {array}  domain.Product
// @Router       /products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	products, err := h.catalog.Products(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ProductBySlug returns a single product.
//
// @Summary      Get product by slug
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Product slug"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{slug} [get]
func (h *CatalogHandler) ProductBySlug(c echo.Context) error {
	product, err := h.catalog.ProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// RelatedProducts lists products sharing a category with the given product.
//
// @Summary      Related products
// @Tags         catalog
// @Produce      json
// @Param        productID   path  string  true  "Product ID"
// @Param        categoryID  path  string  true  "Category ID"
// @Success      200  {array}  domain.Product
// @Router       /products/{productID}/related/{categoryID} [get]
func (h *CatalogHandler) RelatedProducts(c echo.Context) error {
	products, err := h.catalog.RelatedProducts(c.Request().Context(), c.Param("productID"), c.Param("categoryID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search runs a keyword search over the catalog.
//
// @Summary      Search products
// @Tags         catalog
// @Produce      json
// @Param        q  query  string  true  "Search keyword"
// @Success      200  {array}  domain.Product
// @Router       /products/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("q")
	if keyword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	products, err := h.catalog.Search(c.Request().Context(), keyword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Categories lists all product categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

type categoryProductsResponse struct {
	Category *domain.Category `json:"category"`
	Products []domain.Product `json:"products"`
}

// CategoryProducts returns one category and its products.
//
// @Summary      Products in a category
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Category slug"
// @Success      200  {object}  categoryProductsResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/{slug}/products [get]
func (h *CatalogHandler) CategoryProducts(c echo.Context) error {
	category, products, err := h.catalog.CategoryProducts(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryProductsResponse{Category: category, Products: products})
}
