package backend

import "github.com/kartify/storefront-agent/internal/core/domain"

// Wire shapes for the commerce backend. The backend encodes the admin role
// numerically (1 = admin, anything else = regular shopper); the mapping to
// the domain enum happens here and nowhere else.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    wireUser `json:"user"`
}

type wireUser struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    int    `json:"role"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (u wireUser) toDomain() domain.User {
	role := domain.RoleRegular
	if u.Role == 1 {
		role = domain.RoleAdmin
	}
	return domain.User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    role,
		Address: u.Address,
		Phone:   u.Phone,
	}
}

type wireProduct struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
}

func (p wireProduct) toDomain(base string) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.Category,
		Quantity:    p.Quantity,
		Photo:       base + "/product/product-photo/" + p.ID,
	}
}

type wireCategory struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c wireCategory) toDomain() domain.Category {
	return domain.Category{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

type wireOrder struct {
	ID       string        `json:"_id"`
	Status   string        `json:"status"`
	Payment  wirePayment   `json:"payment"`
	Products []wireProduct `json:"products"`
	Created  string        `json:"createdAt"`
}

type wirePayment struct {
	Success bool `json:"success"`
}

// paymentCartEntry is what the payment endpoint expects per cart line; field
// names follow the backend's storefront contract, not the domain model.
type paymentCartEntry struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CartQuantity int     `json:"cartQuantity,omitempty"`
}

func paymentCart(items []domain.CartItem) []paymentCartEntry {
	entries := make([]paymentCartEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, paymentCartEntry{
			ID:           it.ProductID,
			Name:         it.Name,
			Price:        it.Price,
			CartQuantity: it.Quantity,
		})
	}
	return entries
}
