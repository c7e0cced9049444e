package rtdb

import (
	"context"
	"sort"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// productRepository implements repository.ProductRepository over the document store.
type productRepository struct {
	store service.DocumentStore
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(store service.DocumentStore) repository.ProductRepository {
	return &productRepository{store: store}
}

// FindByID retrieves a single product.
func (repo *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var doc model.ProductDoc
	if err := repo.store.Get(ctx, productPath(id), &doc); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to find product by id")
	}

	return toProductDomain(id, &doc), nil
}

// List retrieves the full catalog ordered by key, which for generated keys is
// chronological.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var docs map[string]model.ProductDoc
	if err := repo.store.Get(ctx, productsPath, &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(docs))
	for id, doc := range docs {
		products = append(products, toProductDomain(id, &doc))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

// Create persists a new product under a server-generated key and returns the key.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	doc := fromProductDomain(product)
	doc.CreatedAt = repo.store.ServerTimestamp()

	key, err := repo.store.Push(ctx, productsPath, doc)
	if err != nil {
		return "", domainerrors.NewStoreExecuteError(err, "failed to create product")
	}

	return key, nil
}

// Update merges the mutable fields of an existing product. CreatedAt is never touched.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	fields := map[string]any{
		"name":        product.Name,
		"price":       product.Price,
		"description": product.Description,
		"imageUrl":    product.ImageURL,
		"category":    product.Category,
		"stock":       product.Stock,
	}

	if err := repo.store.Update(ctx, productPath(product.ID), fields); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to update product")
	}

	return nil
}

// Delete removes the product record.
func (repo *productRepository) Delete(ctx context.Context, id string) error {
	if err := repo.store.Remove(ctx, productPath(id)); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to delete product")
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(id string, doc *model.ProductDoc) *entity.Product {
	return &entity.Product{
		ID:          id,
		Name:        doc.Name,
		Price:       doc.Price,
		Description: doc.Description,
		ImageURL:    doc.ImageURL,
		Category:    doc.Category,
		Stock:       doc.Stock,
		CreatedAt:   model.TimeOf(doc.CreatedAt),
	}
}

func fromProductDomain(product *entity.Product) *model.ProductDoc {
	return &model.ProductDoc{
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Stock:       product.Stock,
	}
}
