package impl

import (
	"context"
	"log/slog"
	"strings"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo  repository.ProductRepository
	authorizer   usecase.Authorizer
	imageStorage service.ImageStorage
	logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	productRepo repository.ProductRepository,
	authorizer usecase.Authorizer,
	imageStorage service.ImageStorage,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		productRepo:  productRepo,
		authorizer:   authorizer,
		imageStorage: imageStorage,
		logger:       logger,
	}
}

// Query filters the catalog. Filters are conjunctive and an absent filter
// never narrows; source order is preserved.
func (srv *catalogService) Query(ctx context.Context, input usecase.CatalogQueryInput) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query catalog")
	}

	filtered := make([]*entity.Product, 0, len(products))
	for _, product := range products {
		if matchesFilter(product, input) {
			filtered = append(filtered, product)
		}
	}

	return filtered, nil
}

func matchesFilter(product *entity.Product, input usecase.CatalogQueryInput) bool {
	if input.Category != "" && product.Category != input.Category {
		return false
	}
	if input.MinPrice != nil && product.Price < *input.MinPrice {
		return false
	}
	if input.MaxPrice != nil && product.Price > *input.MaxPrice {
		return false
	}
	if input.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(product.Name), strings.ToLower(input.SearchTerm)) {
		return false
	}

	return true
}

// GetProduct retrieves a single product.
func (srv *catalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// AddProduct creates a product after validating the input and authorizing the
// actor. Validation failures resolve before any store access.
func (srv *catalogService) AddProduct(ctx context.Context, actorID string, input usecase.AddProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionAddProduct); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       input.Stock,
	}

	id, err := srv.productRepo.Create(ctx, product)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add product")
	}
	product.ID = id

	log(ctx, srv.logger).InfoContext(ctx, "product added",
		slog.String("product_id", id),
		slog.String("actor_id", actorID),
	)

	return product, nil
}

// UpdateProduct merges changed fields into an existing product.
func (srv *catalogService) UpdateProduct(ctx context.Context, actorID string, input usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	}

	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionUpdateProduct); err != nil {
		return nil, err
	}

	product, err := srv.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product and its stored image.
func (srv *catalogService) DeleteProduct(ctx context.Context, actorID, productID string) error {
	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionDeleteProduct); err != nil {
		return err
	}

	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if product.ImageURL != "" {
		// Image cleanup failures are logged inside the storage, not surfaced.
		_ = srv.imageStorage.DeleteImage(ctx, product.ImageURL)
	}

	log(ctx, srv.logger).InfoContext(ctx, "product deleted",
		slog.String("product_id", productID),
		slog.String("actor_id", actorID),
	)

	return nil
}

// UploadProductImage stores the image and records its URL on the product.
func (srv *catalogService) UploadProductImage(ctx context.Context, actorID string, input usecase.UploadProductImageInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	if _, err := srv.authorizer.Require(ctx, actorID, entity.ActionUpdateProduct); err != nil {
		return "", err
	}

	product, err := srv.GetProduct(ctx, input.ProductID)
	if err != nil {
		return "", err
	}

	url, err := srv.imageStorage.UploadImage(ctx, "products", input.Filename, input.ContentType, input.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload product image")
	}

	previous := product.ImageURL
	product.ImageURL = url
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return "", errors.Wrap(err, "failed to record product image")
	}

	if previous != "" {
		_ = srv.imageStorage.DeleteImage(ctx, previous)
	}

	return url, nil
}
