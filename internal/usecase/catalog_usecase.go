package usecase

import (
	"context"
	"io"

	"lapak/internal/domain/entity"
)

// --- Input DTOs ---

// CatalogQueryInput composes the optional, conjunctive catalog filters.
type CatalogQueryInput struct {
	Category   string
	MinPrice   *int64
	MaxPrice   *int64
	SearchTerm string
}

// AddProductInput defines the data required to add a catalog product.
type AddProductInput struct {
	Name        string `validate:"required"`
	Price       int64  `validate:"gte=0"`
	Description string
	ImageURL    string
	Category    string
	Stock       int `validate:"gte=0"`
}

// UpdateProductInput defines the mutable product fields. Nil pointers leave
// the stored value untouched.
type UpdateProductInput struct {
	ProductID   string `validate:"required"`
	Name        *string
	Price       *int64
	Description *string
	ImageURL    *string
	Category    *string
	Stock       *int
}

// UploadProductImageInput carries one multipart image upload.
type UploadProductImageInput struct {
	ProductID   string `validate:"required"`
	Filename    string `validate:"required"`
	ContentType string
	Body        io.Reader
}

// CatalogUsecase defines the catalog browsing and management operations.
type CatalogUsecase interface {
	// Query filters the catalog; absent filters pass everything through and
	// source order is preserved.
	Query(ctx context.Context, input CatalogQueryInput) ([]*entity.Product, error)

	// GetProduct retrieves a single product.
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)

	// AddProduct creates a product. Admin and pengelola only.
	AddProduct(ctx context.Context, actorID string, input AddProductInput) (*entity.Product, error)

	// UpdateProduct merges changed fields into an existing product.
	UpdateProduct(ctx context.Context, actorID string, input UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product and its stored image.
	DeleteProduct(ctx context.Context, actorID, productID string) error

	// UploadProductImage stores the image and records its URL on the product.
	UploadProductImage(ctx context.Context, actorID string, input UploadProductImageInput) (string, error)
}
