package impl

import (
	"context"
	"log/slog"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	authorizer  usecase.Authorizer
	logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	authorizer usecase.Authorizer,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// GetCart retrieves the caller's cart with its running total.
func (srv *cartService) GetCart(ctx context.Context, customerID string) (*usecase.CartOutput, error) {
	items, err := srv.cartRepo.ListItems(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}

	return cartOutput(items), nil
}

// SetItem upserts one line item, copying the product's current name and price
// into the line. A zero quantity removes the line.
func (srv *cartService) SetItem(ctx context.Context, customerID string, input usecase.SetCartItemInput) (*usecase.CartOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	customer, err := srv.authorizer.Resolve(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if input.Quantity > 0 && product.Stock < input.Quantity {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity exceeds available stock")
	}

	item := &entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  input.Quantity,
	}
	if err := srv.cartRepo.SetItem(ctx, customerID, item); err != nil {
		return nil, errors.Wrap(err, "failed to set cart item")
	}

	log(ctx, srv.logger).InfoContext(ctx, "cart updated",
		slog.String("customer_id", customerID),
		slog.String("product_id", product.ID),
		slog.Int("quantity", input.Quantity),
	)

	items, err := srv.cartRepo.ListItems(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}

	return cartOutput(items), nil
}

func cartOutput(items []*entity.CartItem) *usecase.CartOutput {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}

	return &usecase.CartOutput{Items: items, Total: total}
}
