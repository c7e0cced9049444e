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

// cartRepository implements repository.CartRepository over the document store.
type cartRepository struct {
	store service.DocumentStore
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(store service.DocumentStore) repository.CartRepository {
	return &cartRepository{store: store}
}

// ListItems retrieves the customer's cart line items.
func (repo *cartRepository) ListItems(ctx context.Context, customerID string) ([]*entity.CartItem, error) {
	var docs map[string]model.CartItemDoc
	if err := repo.store.Get(ctx, cartPath(customerID), &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list cart items")
	}

	items := make([]*entity.CartItem, 0, len(docs))
	for productID, doc := range docs {
		items = append(items, &entity.CartItem{
			ProductID: productID,
			Name:      doc.Name,
			Price:     doc.Price,
			Quantity:  doc.Quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	return items, nil
}

// SetItem upserts one line item; a zero quantity removes it.
func (repo *cartRepository) SetItem(ctx context.Context, customerID string, item *entity.CartItem) error {
	path := cartItemPath(customerID, item.ProductID)

	if item.Quantity <= 0 {
		if err := repo.store.Remove(ctx, path); err != nil {
			return domainerrors.NewStoreExecuteError(err, "failed to remove cart item")
		}

		return nil
	}

	doc := model.CartItemDoc{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
	}
	if err := repo.store.Set(ctx, path, doc); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to set cart item")
	}

	return nil
}

// Clear removes the whole cart after a successful checkout.
func (repo *cartRepository) Clear(ctx context.Context, customerID string) error {
	if err := repo.store.Remove(ctx, cartPath(customerID)); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to clear cart")
	}

	return nil
}
