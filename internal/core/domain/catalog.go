package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when the backend has no record for the requested
// product, category, or order.
var ErrNotFound = errors.New("not found")

// Product mirrors the catalog entries served by the commerce backend. Only
// the fields the agent surfaces are mapped; everything else stays on the
// wire.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Photo       string  `json:"photo,omitempty"`
}

// CartItem converts a catalog product into a cart line snapshot.
func (p Product) CartItem(quantity int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Photo:       p.Photo,
		Quantity:    quantity,
	}
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Order is a read-only view of a previously placed order.
type Order struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
	Products  []Product `json:"products,omitempty"`
}
