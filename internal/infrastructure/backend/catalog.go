package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

// Products fetches one page of the catalog.
func (c *Client) Products(ctx context.Context, page int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	var resp struct {
		Products []wireProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/product-list/%d", page), "", nil, &resp); err != nil {
		return nil, err
	}
	return c.toProducts(resp.Products), nil
}

// ProductBySlug fetches a single product by its URL slug. An unknown slug
// maps to domain.ErrNotFound.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var resp struct {
		Success bool        `json:"success"`
		Product wireProduct `json:"product"`
	}
	path := "/product/get-product/" + url.PathEscape(slug)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !resp.Success || resp.Product.ID == "" {
		return nil, domain.ErrNotFound
	}
	p := resp.Product.toDomain(c.base)
	return &p, nil
}

// RelatedProducts lists products sharing a category with the given product.
func (c *Client) RelatedProducts(ctx context.Context, productID, categoryID string) ([]domain.Product, error) {
	var resp struct {
		Products []wireProduct `json:"products"`
	}
	path := "/product/related-product/" + url.PathEscape(productID) + "/" + url.PathEscape(categoryID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return c.toProducts(resp.Products), nil
}

// Search runs a keyword search over the catalog.
func (c *Client) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	var resp struct {
		Products []wireProduct `json:"products"`
	}
	path := "/product/search/" + url.PathEscape(keyword)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return c.toProducts(resp.Products), nil
}

// Categories lists all product categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var resp struct {
		Success    bool           `json:"success"`
		Categories []wireCategory `json:"category"`
	}
	if err := c.do(ctx, http.MethodGet, "/category/get-category", "", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(resp.Categories))
	for _, wc := range resp.Categories {
		out = append(out, wc.toDomain())
	}
	return out, nil
}

// CategoryProducts lists a category and its products by the category's slug.
// An unknown slug maps to domain.ErrNotFound.
func (c *Client) CategoryProducts(ctx context.Context, slug string) (*domain.Category, []domain.Product, error) {
	var resp struct {
		Category wireCategory  `json:"category"`
		Products []wireProduct `json:"products"`
	}
	path := "/product/product-category/" + url.PathEscape(slug)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	category := resp.Category.toDomain()
	return &category, c.toProducts(resp.Products), nil
}

// CreateProduct creates a catalog entry. Admin-only on the backend side.
func (c *Client) CreateProduct(ctx context.Context, token string, p domain.Product) (*domain.Product, error) {
	body := wireProduct{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.CategoryID,
		Quantity:    p.Quantity,
	}
	var resp struct {
		Success bool        `json:"success"`
		Product wireProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodPost, "/product/create-product", token, body, &resp); err != nil {
		return nil, err
	}
	created := resp.Product.toDomain(c.base)
	return &created, nil
}

// UpdateProduct rewrites a catalog entry. Admin-only on the backend side.
func (c *Client) UpdateProduct(ctx context.Context, token string, p domain.Product) (*domain.Product, error) {
	body := wireProduct{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.CategoryID,
		Quantity:    p.Quantity,
	}
	var resp struct {
		Success bool        `json:"success"`
		Product wireProduct `json:"products"`
	}
	path := "/product/update-product/" + url.PathEscape(p.ID)
	if err := c.do(ctx, http.MethodPut, path, token, body, &resp); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	updated := resp.Product.toDomain(c.base)
	return &updated, nil
}

// DeleteProduct removes a catalog entry. Admin-only on the backend side.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	return c.do(ctx, http.MethodDelete, "/product/delete-product/"+url.PathEscape(productID), token, nil, nil)
}

// CreateCategory adds a product category. Admin-only on the backend side.
func (c *Client) CreateCategory(ctx context.Context, token, name string) (*domain.Category, error) {
	var resp struct {
		Success  bool         `json:"success"`
		Category wireCategory `json:"category"`
	}
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/category/create-category", token, body, &resp); err != nil {
		return nil, err
	}
	created := resp.Category.toDomain()
	return &created, nil
}

// UpdateCategory renames a product category. Admin-only on the backend side.
func (c *Client) UpdateCategory(ctx context.Context, token, categoryID, name string) (*domain.Category, error) {
	var resp struct {
		Success  bool         `json:"success"`
		Category wireCategory `json:"category"`
	}
	body := map[string]string{"name": name}
	path := "/category/update-category/" + url.PathEscape(categoryID)
	if err := c.do(ctx, http.MethodPut, path, token, body, &resp); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	updated := resp.Category.toDomain()
	return &updated, nil
}

// DeleteCategory removes a product category. Admin-only on the backend side.
func (c *Client) DeleteCategory(ctx context.Context, token, categoryID string) error {
	err := c.do(ctx, http.MethodDelete, "/category/delete-category/"+url.PathEscape(categoryID), token, nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (c *Client) toProducts(in []wireProduct) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, wp := range in {
		out = append(out, wp.toDomain(c.base))
	}
	return out
}

func parseOrderTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
