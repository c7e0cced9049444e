package model

// OrderItemDoc is one purchased line within an order, keyed by product ID.
type OrderItemDoc struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// OrderDoc mirrors an orders/{id} record.
type OrderDoc struct {
	Customer   SnapshotDoc             `json:"customer"`
	Items      map[string]OrderItemDoc `json:"items"`
	TotalPrice int64                   `json:"totalPrice"`
	Status     string                  `json:"status"`
	HandlerID  string                  `json:"handlerId,omitempty"`
	CreatedAt  any                     `json:"createdAt,omitempty"`
}
