package impl

import (
	"context"
	"testing"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_SetItemCopiesProductData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	product := f.seedProduct(t, "Kopi Gayo", "minuman", 45000, 10)
	cart := f.cartSvc()

	out, err := cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Kopi Gayo", out.Items[0].Name)
	assert.Equal(t, int64(45000), out.Items[0].Price)
	assert.Equal(t, int64(90000), out.Total)
}

func TestCartService_ZeroQuantityRemovesLine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	product := f.seedProduct(t, "Kopi Gayo", "minuman", 45000, 10)
	cart := f.cartSvc()

	_, err := cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	out, err := cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: product.ID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Zero(t, out.Total)
}

func TestCartService_SetItemGuards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	product := f.seedProduct(t, "Kopi Gayo", "minuman", 45000, 3)
	cart := f.cartSvc()

	_, err := cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: "ghost", Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	_, err = cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: product.ID, Quantity: 5})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	before := f.store.Calls()
	_, err = cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: "", Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, before, f.store.Calls())
}

func TestCartService_GetCartTotalsLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "cust-1", entity.RoleCustomer)
	kopi := f.seedProduct(t, "Kopi Gayo", "minuman", 45000, 10)
	teh := f.seedProduct(t, "Teh Melati", "minuman", 20000, 10)
	cart := f.cartSvc()

	_, err := cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: kopi.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cart.SetItem(ctx, "cust-1", usecase.SetCartItemInput{ProductID: teh.ID, Quantity: 2})
	require.NoError(t, err)

	out, err := cart.GetCart(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(85000), out.Total)
}
