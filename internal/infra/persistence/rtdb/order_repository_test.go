package rtdb

import (
	"context"
	"testing"

	"lapak/internal/domain/entity"
	"lapak/internal/domain/repository"
	"lapak/internal/infra/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(customerID string) *entity.Order {
	return &entity.Order{
		Customer: entity.ProfileSnapshot{UserID: customerID, Username: "budi", Email: "budi@example.com"},
		Items: map[string]entity.OrderItem{
			"p1": {ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 2, Subtotal: 50000},
		},
		TotalPrice: 50000,
		Status:     entity.OrderStatusPending,
	}
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(store.NewMemoryStore())

	id, err := repo.Create(ctx, newOrder("u1"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.Equal(t, "u1", got.Customer.UserID)
	assert.Equal(t, int64(50000), got.TotalPrice)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Empty(t, got.HandlerID)
}

func TestOrderRepository_FindMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(store.NewMemoryStore())

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(store.NewMemoryStore())

	_, err := repo.Create(ctx, newOrder("u1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder("u2"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder("u1"))
	require.NoError(t, err)

	orders, err := repo.ListByCustomer(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_UpdateStatusClaimsHandlerOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(store.NewMemoryStore())

	id, err := repo.Create(ctx, newOrder("u1"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, entity.OrderStatusPending, entity.OrderStatusDikemas, "handler-1"))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDikemas, got.Status)
	assert.Equal(t, "handler-1", got.HandlerID)

	// The second transition keeps the original handler.
	require.NoError(t, repo.UpdateStatus(ctx, id, entity.OrderStatusDikemas, entity.OrderStatusDikirim, "handler-2"))

	got, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDikirim, got.Status)
	assert.Equal(t, "handler-1", got.HandlerID)
}

func TestOrderRepository_UpdateStatusRejectsStaleExpectation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(store.NewMemoryStore())

	id, err := repo.Create(ctx, newOrder("u1"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, entity.OrderStatusPending, entity.OrderStatusDikemas, "handler-1"))

	err = repo.UpdateStatus(ctx, id, entity.OrderStatusPending, entity.OrderStatusDikemas, "handler-2")
	assert.ErrorIs(t, err, repository.ErrStatusChanged)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDikemas, got.Status)
	assert.Equal(t, "handler-1", got.HandlerID)
}

func TestOrderRepository_UpdateStatusMissingOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(store.NewMemoryStore())

	err := repo.UpdateStatus(ctx, "missing", entity.OrderStatusPending, entity.OrderStatusDikemas, "handler-1")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
