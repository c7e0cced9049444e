package impl

import (
	"context"
	"testing"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/service"
	"lapak/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) seedCart(t *testing.T, customerID string, items ...*entity.CartItem) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, f.carts.SetItem(context.Background(), customerID, item))
	}
}

func TestOrderService_CheckoutBuildsPendingOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedCart(t, "cust-1",
		&entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 2},
		&entity.CartItem{ProductID: "p2", Name: "Teh", Price: 10000, Quantity: 1},
	)

	order, err := f.orderSvc().Checkout(ctx, "cust-1")
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, int64(60000), order.TotalPrice)
	assert.Equal(t, "cust-1", order.Customer.UserID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(50000), order.Items["p1"].Subtotal)

	remaining, err := f.carts.ListItems(ctx, "cust-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestOrderService_CheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)

	_, err := f.orderSvc().Checkout(ctx, "cust-1")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_CheckoutBlockedCustomer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedBlockedUser(t, "cust-1")
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	_, err := f.orderSvc().Checkout(ctx, "cust-1")
	assert.ErrorIs(t, err, domainerrors.ErrUserBlocked)
}

func TestOrderService_GetOrderVisibility(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "cust-2", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.GetOrder(ctx, "cust-1", order.ID)
	assert.NoError(t, err)

	_, err = orderSvc.GetOrder(ctx, "mgr-1", order.ID)
	assert.NoError(t, err)

	_, err = orderSvc.GetOrder(ctx, "cust-2", order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_AdvanceClaimsHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)
	f.seedUser(t, "mgr-2", entity.RolePengelola)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	advanced, err := orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDikemas, advanced.Status)
	assert.Equal(t, "mgr-1", advanced.HandlerID)

	// Another pengelola cannot take over a claimed order.
	_, err = orderSvc.AdvanceOrder(ctx, "mgr-2", order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotAssigned)

	shipped, err := orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDikirim, shipped.Status)
	assert.Equal(t, "mgr-1", shipped.HandlerID)
}

func TestOrderService_AdminOverridesHandlerClaim(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)
	f.seedUser(t, "admin-1", entity.RoleAdmin)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	require.NoError(t, err)

	shipped, err := orderSvc.AdvanceOrder(ctx, "admin-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDikirim, shipped.Status)
	assert.Equal(t, "mgr-1", shipped.HandlerID)
}

func TestOrderService_AdvancePastShippedIsRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	require.NoError(t, err)
	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	require.NoError(t, err)

	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_CustomerCannotAdvance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.AdvanceOrder(ctx, "cust-1", order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_CancelOnlyPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	cancelled, err := orderSvc.CancelOrder(ctx, "cust-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDibatalkan, cancelled.Status)

	// A packed order can no longer be cancelled.
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p2", Name: "Teh", Price: 10000, Quantity: 1})
	second, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)
	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", second.ID)
	require.NoError(t, err)

	_, err = orderSvc.CancelOrder(ctx, "cust-1", second.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_CancelSomeoneElsesOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "cust-2", entity.RoleCustomer)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.CancelOrder(ctx, "cust-2", order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_StatusChangePublishesEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", order.ID)
	require.NoError(t, err)

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, service.EventKindOrderStatus, events[0].Kind)
	assert.Equal(t, order.ID, events[0].OrderID)
	assert.Equal(t, "cust-1", events[0].CustomerID)
	assert.Equal(t, entity.OrderStatusDikemas.String(), events[0].Status)
}

func TestOrderService_ListOrdersFiltersByStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedUser(t, "mgr-1", entity.RolePengelola)

	orderSvc := f.orderSvc()
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})
	first, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p2", Name: "Teh", Price: 10000, Quantity: 1})
	_, err = orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	_, err = orderSvc.AdvanceOrder(ctx, "mgr-1", first.ID)
	require.NoError(t, err)

	packed, err := orderSvc.ListOrders(ctx, "mgr-1", usecase.OrderListInput{Status: "DIKEMAS"})
	require.NoError(t, err)
	require.Len(t, packed, 1)
	assert.Equal(t, first.ID, packed[0].ID)

	_, err = orderSvc.ListOrders(ctx, "mgr-1", usecase.OrderListInput{Status: "LUNAS"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = orderSvc.ListOrders(ctx, "cust-1", usecase.OrderListInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_ListMyOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)

	orderSvc := f.orderSvc()
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})
	first, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p2", Name: "Teh", Price: 10000, Quantity: 1})
	second, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	orders, err := orderSvc.ListMyOrders(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderService_ReceiptQRRoundTrips(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	f.seedCart(t, "cust-1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 1})

	orderSvc := f.orderSvc()
	order, err := orderSvc.Checkout(ctx, "cust-1")
	require.NoError(t, err)

	png, err := orderSvc.ReceiptQR(ctx, "cust-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
