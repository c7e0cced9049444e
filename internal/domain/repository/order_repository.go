package repository

import (
	"context"
	"errors"

	"lapak/internal/domain/entity"
)

// ErrOrderNotFound is returned when an order lookup misses.
var ErrOrderNotFound = errors.New("order not found")

// ErrStatusChanged is returned when the conditional status write observes a
// source status different from the expected one.
var ErrStatusChanged = errors.New("order status changed concurrently")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id string) (*entity.Order, error)

	// ListByCustomer retrieves the orders placed by a customer.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error)

	// List retrieves all orders.
	List(ctx context.Context) ([]*entity.Order, error)

	// Create persists a new order under a server-generated key and returns the key.
	Create(ctx context.Context, order *entity.Order) (string, error)

	// UpdateStatus moves the order from expected to target, claiming the
	// handler slot when it is still empty. The write is conditional on the
	// current status matching expected; otherwise ErrStatusChanged is returned
	// and the record is left unchanged.
	UpdateStatus(ctx context.Context, id string, expected, target entity.OrderStatus, handlerID string) error
}
