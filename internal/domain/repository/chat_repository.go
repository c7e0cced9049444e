package repository

import (
	"context"
	"errors"

	"lapak/internal/domain/entity"
)

// ErrRoomNotFound is returned when a chat room's shared metadata is absent.
var ErrRoomNotFound = errors.New("chat room not found")

// ChatRepository defines the operations for chat persistence. Message logs are
// append-only; room metadata is bootstrapped once and updated only through
// SendMessage activity.
type ChatRepository interface {
	// GetRoom retrieves the shared room metadata.
	GetRoom(ctx context.Context, roomID string) (*entity.ChatRoom, error)

	// BootstrapRoom initializes the shared metadata exactly once. If the room
	// already exists the call is a no-op and reports created=false.
	BootstrapRoom(ctx context.Context, room *entity.ChatRoom) (created bool, err error)

	// AppendMessage appends to the room's ordered log with a server-assigned
	// timestamp and returns the generated message key.
	AppendMessage(ctx context.Context, roomID, senderID, text string) (string, error)

	// TouchRoom updates the shared metadata's last message and timestamp.
	TouchRoom(ctx context.Context, roomID, lastMessage string) error

	// UpsertIndexEntry writes one participant's private index entry for a room.
	UpsertIndexEntry(ctx context.Context, ownerID string, entry *entity.ChatIndexEntry) error

	// RefreshIndexEntry merges only the counterpart identity into a
	// participant's index entry, leaving its last activity untouched.
	RefreshIndexEntry(ctx context.Context, ownerID string, entry *entity.ChatIndexEntry) error

	// ListIndex retrieves a participant's room index, most recent first.
	ListIndex(ctx context.Context, ownerID string) ([]*entity.ChatIndexEntry, error)

	// ListMessages retrieves the room's log in timestamp order.
	ListMessages(ctx context.Context, roomID string) ([]*entity.ChatMessage, error)

	// WatchMessages streams full message-log snapshots for the room until the
	// context is cancelled.
	WatchMessages(ctx context.Context, roomID string) (<-chan []*entity.ChatMessage, error)
}
