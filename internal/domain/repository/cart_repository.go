package repository

import (
	"context"

	"lapak/internal/domain/entity"
)

// CartRepository defines the operations for per-customer cart persistence.
type CartRepository interface {
	// ListItems retrieves the customer's cart line items.
	ListItems(ctx context.Context, customerID string) ([]*entity.CartItem, error)

	// SetItem upserts one line item; a zero quantity removes it.
	SetItem(ctx context.Context, customerID string, item *entity.CartItem) error

	// Clear removes the whole cart after a successful checkout.
	Clear(ctx context.Context, customerID string) error
}
