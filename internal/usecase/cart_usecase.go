package usecase

import (
	"context"

	"lapak/internal/domain/entity"
)

// SetCartItemInput sets the quantity of one product in the caller's cart.
// Zero removes the line item.
type SetCartItemInput struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gte=0"`
}

// CartOutput returns the cart lines with the running total.
type CartOutput struct {
	Items []*entity.CartItem
	Total int64
}

// CartUsecase defines the per-customer cart operations.
type CartUsecase interface {
	// GetCart retrieves the caller's cart.
	GetCart(ctx context.Context, customerID string) (*CartOutput, error)

	// SetItem upserts one line item, copying the product's current name and
	// price. Zero quantity removes the line.
	SetItem(ctx context.Context, customerID string, input SetCartItemInput) (*CartOutput, error)
}
