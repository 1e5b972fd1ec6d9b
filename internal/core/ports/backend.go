package ports

import (
	"context"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

// LoginResult is the backend's answer to a successful credential exchange.
type LoginResult struct {
	Token   string
	User    domain.User
	Message string
}

// AuthClient exchanges credentials for a bearer token and profile.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// CatalogClient reads and (for admins) mutates the remote product catalog.
// Mutating calls take the bearer token explicitly; a 401 response surfaces
// as domain.ErrUnauthorized.
type CatalogClient interface {
	Products(ctx context.Context, page int) ([]domain.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	RelatedProducts(ctx context.Context, productID, categoryID string) ([]domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryProducts(ctx context.Context, slug string) (*domain.Category, []domain.Product, error)
	CreateProduct(ctx context.Context, token string, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token string, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) error
	CreateCategory(ctx context.Context, token, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, token, categoryID, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, token, categoryID string) error
}

// CheckoutClient drives the payment flow against the backend's gateway
// integration and reads order history.
type CheckoutClient interface {
	// PaymentToken fetches the client token the payment widget needs.
	PaymentToken(ctx context.Context) (string, error)

	// SubmitPayment sends the gateway nonce together with the cart snapshot.
	SubmitPayment(ctx context.Context, token, nonce string, items []domain.CartItem) error

	// Orders lists the authenticated shopper's orders.
	Orders(ctx context.Context, token string) ([]domain.Order, error)

	// AllOrders lists every order in the store. Admin-only on the backend side.
	AllOrders(ctx context.Context, token string) ([]domain.Order, error)

	// UpdateOrderStatus moves an order to a new status. Admin-only on the
	// backend side.
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) error
}
