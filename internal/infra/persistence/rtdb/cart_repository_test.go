package rtdb

import (
	"context"
	"testing"

	"lapak/internal/domain/entity"
	"lapak/internal/infra/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_SetAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCartRepository(store.NewMemoryStore())

	require.NoError(t, repo.SetItem(ctx, "u1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 2}))
	require.NoError(t, repo.SetItem(ctx, "u1", &entity.CartItem{ProductID: "p2", Name: "Teh", Price: 10000, Quantity: 1}))

	items, err := repo.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(50000), items[0].Subtotal())
}

func TestCartRepository_ZeroQuantityRemoves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCartRepository(store.NewMemoryStore())

	require.NoError(t, repo.SetItem(ctx, "u1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 2}))
	require.NoError(t, repo.SetItem(ctx, "u1", &entity.CartItem{ProductID: "p1", Quantity: 0}))

	items, err := repo.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRepository_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCartRepository(store.NewMemoryStore())

	require.NoError(t, repo.SetItem(ctx, "u1", &entity.CartItem{ProductID: "p1", Name: "Kopi", Price: 25000, Quantity: 2}))
	require.NoError(t, repo.Clear(ctx, "u1"))

	items, err := repo.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
