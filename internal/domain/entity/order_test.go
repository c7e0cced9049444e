package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_ExactTable(t *testing.T) {
	statuses := []OrderStatus{
		OrderStatusPending, OrderStatusDikemas, OrderStatusDikirim,
		OrderStatusDiterima, OrderStatusSelesai, OrderStatusDibatalkan,
	}

	legal := map[[2]OrderStatus]bool{
		{OrderStatusPending, OrderStatusDikemas}:    true,
		{OrderStatusDikemas, OrderStatusDikirim}:    true,
		{OrderStatusPending, OrderStatusDibatalkan}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := legal[[2]OrderStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_RepeatedTransitionRejected(t *testing.T) {
	// Once DIKEMAS is written, applying PENDING->DIKEMAS again must fail
	// because the source state no longer matches.
	assert.False(t, CanTransition(OrderStatusDikemas, OrderStatusDikemas))
	assert.False(t, CanTransition(OrderStatusDikirim, OrderStatusDikirim))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(OrderStatusPending)
	assert.True(t, ok)
	assert.Equal(t, OrderStatusDikemas, next)

	next, ok = NextStatus(OrderStatusDikemas)
	assert.True(t, ok)
	assert.Equal(t, OrderStatusDikirim, next)

	_, ok = NextStatus(OrderStatusDikirim)
	assert.False(t, ok)
}

func TestOrderTotal(t *testing.T) {
	order := &Order{
		Items: map[string]OrderItem{
			"p1": {ProductID: "p1", Price: 1500, Quantity: 2, Subtotal: 3000},
			"p2": {ProductID: "p2", Price: 500, Quantity: 1, Subtotal: 500},
		},
	}

	assert.Equal(t, int64(3500), order.Total())
}
