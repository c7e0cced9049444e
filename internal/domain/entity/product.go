package entity

import "time"

// Product is a catalog item. Price and stock are never negative; CreatedAt is
// assigned by the store's server clock and immutable once set.
type Product struct {
	ID          string
	Name        string
	Price       int64 // Price in the smallest currency unit (rupiah).
	Description string
	ImageURL    string
	Category    string
	Stock       int
	CreatedAt   time.Time
}

// CartItem is a line item in a customer's cart, keyed by product ID.
type CartItem struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
}

// Subtotal returns the line total for the cart item.
func (ci CartItem) Subtotal() int64 {
	return ci.Price * int64(ci.Quantity)
}
