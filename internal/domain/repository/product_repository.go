package repository

import (
	"context"
	"errors"

	"lapak/internal/domain/entity"
)

// ErrProductNotFound is returned when a product lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the operations for catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a single product.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// List retrieves the full catalog preserving storage order.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product under a server-generated key and returns the key.
	Create(ctx context.Context, product *entity.Product) (string, error)

	// Update merges the mutable fields of an existing product. CreatedAt is never touched.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes the product record.
	Delete(ctx context.Context, id string) error
}
