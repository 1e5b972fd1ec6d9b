package domain

import "errors"

var ErrDuplicateItem = errors.New("item already in cart")

// ErrPersistenceFailed signals that a cart mutation was applied in memory but
// could not be written to durable storage. The mutation stands; the caller
// only loses reload durability, not the action itself.
var ErrPersistenceFailed = errors.New("cart persistence failed")

// CartItem is a snapshot of a product the shopper intends to buy. Price and
// description are copied at add time so the cart renders without a catalog
// round trip.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Photo       string  `json:"photo,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
}

// Units returns the requested quantity, defaulting to 1 when unset.
func (i CartItem) Units() int {
	if i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

// Subtotal is price × units for this line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Units())
}
