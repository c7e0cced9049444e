package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "lapak/internal/delivery/context"
	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	authorizer usecase.Authorizer
	publisher  service.EventPublisher
	qrcodeSvc  service.QRCodeService
	logger     *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	authorizer usecase.Authorizer,
	publisher service.EventPublisher,
	qrcodeSvc service.QRCodeService,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		authorizer: authorizer,
		publisher:  publisher,
		qrcodeSvc:  qrcodeSvc,
		logger:     logger,
	}
}

// Checkout turns the customer's cart into one PENDING order, then clears the
// cart. The customer profile is snapshotted into the order at this point.
func (srv *orderService) Checkout(ctx context.Context, customerID string) (*entity.Order, error) {
	customer, err := srv.authorizer.Resolve(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}

	lines, err := srv.cartRepo.ListItems(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cart")
	}
	if len(lines) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cart is empty")
	}

	items := make(map[string]entity.OrderItem, len(lines))
	var total int64
	for _, line := range lines {
		subtotal := line.Subtotal()
		items[line.ProductID] = entity.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		}
		total += subtotal
	}

	order := &entity.Order{
		Customer:   customer.Snapshot(),
		Items:      items,
		TotalPrice: total,
		Status:     entity.OrderStatusPending,
	}

	id, err := srv.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}
	order.ID = id

	// Cart cleanup is post-success; a failure leaves stale lines, not a bad order.
	if err := srv.cartRepo.Clear(ctx, customerID); err != nil {
		log(ctx, srv.logger).WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("customer_id", customerID),
			slog.Any("error", err),
		)
	}

	log(ctx, srv.logger).InfoContext(ctx, "order placed",
		slog.String("order_id", id),
		slog.String("customer_id", customerID),
		slog.Int64("total_price", total),
	)

	return order, nil
}

// GetOrder retrieves an order visible to the actor.
func (srv *orderService) GetOrder(ctx context.Context, actorID, orderID string) (*entity.Order, error) {
	actor, err := srv.authorizer.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Customer.UserID != actorID && !isStaff(actor) {
		return nil, domainerrors.ErrForbidden.WithDetails("order belongs to another customer")
	}

	return order, nil
}

// ListMyOrders retrieves the actor's own orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, customerID string) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}
	sortNewestFirst(orders)

	return orders, nil
}

// ListOrders retrieves the fulfillment dashboard listing, newest first.
func (srv *orderService) ListOrders(ctx context.Context, actorID string, input usecase.OrderListInput) ([]*entity.Order, error) {
	actor, err := srv.authorizer.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !isStaff(actor) {
		return nil, domainerrors.ErrForbidden.WithDetails("order dashboard requires a staff role")
	}

	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	if input.Status != "" {
		status := entity.OrderStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + input.Status)
		}

		filtered := orders[:0]
		for _, order := range orders {
			if order.Status == status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}
	sortNewestFirst(orders)

	return orders, nil
}

// AdvanceOrder applies the next fulfillment transition. The first advance
// claims the handler slot; later advances require the same handler unless the
// actor is an admin.
func (srv *orderService) AdvanceOrder(ctx context.Context, actorID, orderID string) (*entity.Order, error) {
	actor, err := srv.authorizer.Require(ctx, actorID, entity.ActionAdvanceOrder)
	if err != nil {
		return nil, err
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.HandlerID != "" && order.HandlerID != actorID && actor.Role != entity.RoleAdmin {
		return nil, domainerrors.ErrOrderNotAssigned
	}

	next, ok := entity.NextStatus(order.Status)
	if !ok {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			"no fulfillment transition from " + order.Status.String(),
		)
	}

	if err := srv.applyTransition(ctx, orderID, order.Status, next, actorID); err != nil {
		return nil, err
	}

	updated, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	srv.publishStatusEvent(ctx, updated)

	return updated, nil
}

// CancelOrder cancels the actor's own PENDING order.
func (srv *orderService) CancelOrder(ctx context.Context, customerID, orderID string) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Customer.UserID != customerID {
		return nil, domainerrors.ErrForbidden.WithDetails("order belongs to another customer")
	}

	if !entity.CanTransition(order.Status, entity.OrderStatusDibatalkan) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			"cannot cancel an order in status " + order.Status.String(),
		)
	}

	if err := srv.applyTransition(ctx, orderID, order.Status, entity.OrderStatusDibatalkan, ""); err != nil {
		return nil, err
	}

	updated, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	srv.publishStatusEvent(ctx, updated)

	return updated, nil
}

// ReceiptQR renders the PNG receipt QR for an order visible to the actor.
func (srv *orderService) ReceiptQR(ctx context.Context, actorID, orderID string) ([]byte, error) {
	order, err := srv.GetOrder(ctx, actorID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeSvc.GenerateReceiptQR(order.ID, order.TotalPrice)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate receipt QR")
	}

	return png, nil
}

func (srv *orderService) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// applyTransition performs the conditional status write. A concurrent change
// of the source status surfaces as an invalid transition with state unchanged.
func (srv *orderService) applyTransition(ctx context.Context, orderID string, from, to entity.OrderStatus, handlerID string) error {
	err := srv.orderRepo.UpdateStatus(ctx, orderID, from, to, handlerID)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrStatusChanged) {
		return domainerrors.ErrInvalidTransition.WithDetails("order status changed concurrently")
	}
	if errors.Is(err, repository.ErrOrderNotFound) {
		return domainerrors.ErrOrderNotFound
	}

	return errors.Wrap(err, "failed to apply order transition")
}

// publishStatusEvent notifies the worker about a landed status change.
// Publishing is best effort; the write already succeeded.
func (srv *orderService) publishStatusEvent(ctx context.Context, order *entity.Order) {
	event := &service.StoreEvent{
		Kind:       service.EventKindOrderStatus,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:    order.ID,
		CustomerID: order.Customer.UserID,
		Status:     order.Status.String(),
	}

	if err := srv.publisher.PublishStoreEvent(ctx, event); err != nil {
		log(ctx, srv.logger).WarnContext(ctx, "failed to publish order status event",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}
}

// isStaff reports whether the user holds any non-customer role.
func isStaff(user *entity.User) bool {
	return user.Role.Level() < entity.LevelCustomer
}

// sortNewestFirst orders by creation time descending, falling back to key
// order for equal timestamps.
func sortNewestFirst(orders []*entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}

		return orders[i].ID > orders[j].ID
	})
}
