package model

// ProductDoc mirrors a products/{id} record.
type ProductDoc struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category,omitempty"`
	Stock       int    `json:"stock"`
	CreatedAt   any    `json:"createdAt,omitempty"`
}

// CartItemDoc mirrors a carts/{userId}/{productId} line item. The product ID
// is the record key.
type CartItemDoc struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}
