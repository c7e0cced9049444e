package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state after checkout.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusDikemas means the order has been packed.
	OrderStatusDikemas OrderStatus = "DIKEMAS"
	// OrderStatusDikirim means the order has been shipped.
	OrderStatusDikirim OrderStatus = "DIKIRIM"
	// OrderStatusDiterima means the customer confirmed receipt.
	OrderStatusDiterima OrderStatus = "DITERIMA"
	// OrderStatusSelesai is the completed terminal state.
	OrderStatusSelesai OrderStatus = "SELESAI"
	// OrderStatusDibatalkan is the cancelled terminal state, reachable from PENDING only.
	OrderStatusDibatalkan OrderStatus = "DIBATALKAN"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDikemas, OrderStatusDikirim,
		OrderStatusDiterima, OrderStatusSelesai, OrderStatusDibatalkan:
		return true
	default:
		return false
	}
}

// fulfillmentTransitions is the table of transitions a fulfillment workflow may
// apply. Terminal transitions past DIKIRIM are customer-driven and not listed.
var fulfillmentTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending: OrderStatusDikemas,
	OrderStatusDikemas: OrderStatusDikirim,
}

// CanTransition reports whether a fulfillment workflow may move an order from
// one status to another. The same-status pair is always rejected, so applying
// a transition twice fails once the first write lands.
func CanTransition(from, to OrderStatus) bool {
	if to == OrderStatusDibatalkan {
		return from == OrderStatusPending
	}

	return fulfillmentTransitions[from] == to
}

// NextStatus returns the forward fulfillment transition for the status, if any.
func NextStatus(from OrderStatus) (OrderStatus, bool) {
	to, ok := fulfillmentTransitions[from]

	return to, ok
}

// OrderItem is one purchased line within an order, keyed by product ID.
type OrderItem struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
	Subtotal  int64
}

// Order is a placed purchase. Status is exclusively mutated by fulfillment
// workflows; the customer snapshot is immutable after checkout.
type Order struct {
	ID         string
	Customer   ProfileSnapshot      // Snapshot of the purchasing user at checkout.
	Items      map[string]OrderItem // productID -> line item.
	TotalPrice int64
	Status     OrderStatus
	HandlerID  string // Pengelola assigned to fulfill this order; empty until claimed.
	CreatedAt  time.Time
}

// Total recomputes the order total from its items.
func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal
	}

	return total
}
