package service

import "context"

// Store event kinds published for trusted-path fan-out.
const (
	EventKindOrderStatus = "order.status"
	EventKindChatMessage = "chat.message"
)

// StoreEvent describes a completed write that the worker fans out: an order
// status change notified to the customer, or a chat message whose counterpart
// index entry only the trusted path may write.
type StoreEvent struct {
	Kind      string `json:"kind"`
	RequestID string `json:"request_id,omitempty"`

	// Order status fields
	OrderID    string `json:"order_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Status     string `json:"status,omitempty"`

	// Chat fields
	RoomID     string `json:"room_id,omitempty"`
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Text       string `json:"text,omitempty"`
}

// EventPublisher publishes store events for asynchronous processing.
type EventPublisher interface {
	PublishStoreEvent(ctx context.Context, event *StoreEvent) error
	Close() error
}
