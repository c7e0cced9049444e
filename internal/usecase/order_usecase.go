package usecase

import (
	"context"

	"lapak/internal/domain/entity"
)

// OrderListInput filters the fulfillment order listing.
type OrderListInput struct {
	Status string
}

// OrderUsecase defines checkout and fulfillment operations.
type OrderUsecase interface {
	// Checkout turns the customer's cart into one PENDING order, then clears
	// the cart.
	Checkout(ctx context.Context, customerID string) (*entity.Order, error)

	// GetOrder retrieves an order visible to the actor: its customer, a
	// fulfillment role, or an admin.
	GetOrder(ctx context.Context, actorID, orderID string) (*entity.Order, error)

	// ListMyOrders retrieves the actor's own orders, newest first.
	ListMyOrders(ctx context.Context, customerID string) ([]*entity.Order, error)

	// ListOrders retrieves the fulfillment dashboard listing, newest first,
	// optionally filtered by status.
	ListOrders(ctx context.Context, actorID string, input OrderListInput) ([]*entity.Order, error)

	// AdvanceOrder applies the next fulfillment transition to the order,
	// claiming the handler slot on the first advance.
	AdvanceOrder(ctx context.Context, actorID, orderID string) (*entity.Order, error)

	// CancelOrder cancels the actor's own PENDING order.
	CancelOrder(ctx context.Context, customerID, orderID string) (*entity.Order, error)

	// ReceiptQR renders the PNG receipt QR for a delivered order.
	ReceiptQR(ctx context.Context, actorID, orderID string) ([]byte, error)
}
