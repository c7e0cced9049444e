package usecase

import (
	"context"

	"lapak/internal/domain/entity"
)

// StartSessionOutput returns the resolved room and its current log.
type StartSessionOutput struct {
	Room     *entity.ChatRoom
	Messages []*entity.ChatMessage
}

// SendMessageInput defines one outgoing chat message.
type SendMessageInput struct {
	RoomID string `validate:"required"`
	Text   string `validate:"required"`
}

// ChatUsecase defines the chat session and messaging operations.
type ChatUsecase interface {
	// StartSession resolves the deterministic room for the sender/receiver
	// pair, bootstraps the shared metadata exactly once, writes the sender's
	// index entry and returns the current log.
	StartSession(ctx context.Context, senderID, receiverID string) (*StartSessionOutput, error)

	// SendMessage appends one message with a server-assigned timestamp and
	// refreshes the room metadata and the sender's index entry. The
	// counterpart's index entry is written by the trusted path.
	SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.ChatMessage, error)

	// ListIndex retrieves the caller's room listing, most recent first.
	ListIndex(ctx context.Context, userID string) ([]*entity.ChatIndexEntry, error)

	// ListMessages retrieves the room's log for a participant.
	ListMessages(ctx context.Context, userID, roomID string) ([]*entity.ChatMessage, error)

	// StreamMessages streams full log snapshots for a participant until the
	// context is cancelled.
	StreamMessages(ctx context.Context, userID, roomID string) (<-chan []*entity.ChatMessage, error)

	// ApplyMessageFanOut performs the trusted-path counterpart index write for
	// a published chat event. Called by the worker.
	ApplyMessageFanOut(ctx context.Context, event *FanOutEvent) error
}

// FanOutEvent is the worker-side view of a published chat message.
type FanOutEvent struct {
	RoomID     string
	SenderID   string
	SenderName string
	ReceiverID string
	Text       string
}
