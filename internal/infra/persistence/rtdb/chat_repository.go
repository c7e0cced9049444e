package rtdb

import (
	"context"
	"encoding/json"
	"sort"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// chatRepository implements repository.ChatRepository over the document store.
type chatRepository struct {
	store service.DocumentStore
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(store service.DocumentStore) repository.ChatRepository {
	return &chatRepository{store: store}
}

// GetRoom retrieves the shared room metadata.
func (repo *chatRepository) GetRoom(ctx context.Context, roomID string) (*entity.ChatRoom, error) {
	var doc model.ChatRoomDoc
	if err := repo.store.Get(ctx, roomMetaPath(roomID), &doc); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, repository.ErrRoomNotFound
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to get chat room")
	}

	return toRoomDomain(roomID, &doc), nil
}

// BootstrapRoom initializes the shared metadata exactly once. A transaction
// makes the first writer win; later callers observe the existing record and
// report created=false.
func (repo *chatRepository) BootstrapRoom(ctx context.Context, room *entity.ChatRoom) (bool, error) {
	created := false
	err := repo.store.Transaction(ctx, roomMetaPath(room.ID), func(node service.TxnNode) (any, error) {
		var current map[string]any
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		if current != nil {
			return current, nil
		}

		created = true

		return model.ChatRoomDoc{
			Participants:  room.ParticipantIDs,
			LastTimestamp: repo.store.ServerTimestamp(),
		}, nil
	})
	if err != nil {
		return false, domainerrors.NewStoreExecuteError(err, "failed to bootstrap chat room")
	}

	return created, nil
}

// AppendMessage appends to the room's ordered log with a server-assigned
// timestamp and returns the generated message key.
func (repo *chatRepository) AppendMessage(ctx context.Context, roomID, senderID, text string) (string, error) {
	doc := model.ChatMessageDoc{
		SenderID:  senderID,
		Text:      text,
		Timestamp: repo.store.ServerTimestamp(),
	}

	key, err := repo.store.Push(ctx, roomMessagesPath(roomID), doc)
	if err != nil {
		return "", domainerrors.NewStoreExecuteError(err, "failed to append chat message")
	}

	return key, nil
}

// TouchRoom updates the shared metadata's last message and timestamp.
func (repo *chatRepository) TouchRoom(ctx context.Context, roomID, lastMessage string) error {
	fields := map[string]any{
		"lastMessage":   lastMessage,
		"lastTimestamp": repo.store.ServerTimestamp(),
	}

	if err := repo.store.Update(ctx, roomMetaPath(roomID), fields); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to touch chat room")
	}

	return nil
}

// UpsertIndexEntry writes one participant's private index entry for a room.
func (repo *chatRepository) UpsertIndexEntry(ctx context.Context, ownerID string, entry *entity.ChatIndexEntry) error {
	doc := model.ChatIndexDoc{
		CounterpartID:   entry.CounterpartID,
		CounterpartName: entry.CounterpartName,
		LastMessage:     entry.LastMessage,
		LastTimestamp:   repo.store.ServerTimestamp(),
	}

	if err := repo.store.Set(ctx, indexEntryPath(ownerID, entry.RoomID), doc); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to upsert chat index entry")
	}

	return nil
}

// RefreshIndexEntry merges the counterpart identity into a participant's index
// entry. The merge never touches lastMessage or lastTimestamp, and it creates
// the entry when a missed fan-out left none behind.
func (repo *chatRepository) RefreshIndexEntry(ctx context.Context, ownerID string, entry *entity.ChatIndexEntry) error {
	fields := map[string]any{
		"counterpartId":   entry.CounterpartID,
		"counterpartName": entry.CounterpartName,
	}

	if err := repo.store.Update(ctx, indexEntryPath(ownerID, entry.RoomID), fields); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to refresh chat index entry")
	}

	return nil
}

// ListIndex retrieves a participant's room index, most recent activity first.
func (repo *chatRepository) ListIndex(ctx context.Context, ownerID string) ([]*entity.ChatIndexEntry, error) {
	var docs map[string]model.ChatIndexDoc
	if err := repo.store.Get(ctx, userIndexPath(ownerID), &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list chat index")
	}

	entries := make([]*entity.ChatIndexEntry, 0, len(docs))
	for roomID, doc := range docs {
		entries = append(entries, &entity.ChatIndexEntry{
			RoomID:          roomID,
			CounterpartID:   doc.CounterpartID,
			CounterpartName: doc.CounterpartName,
			LastMessage:     doc.LastMessage,
			LastTimestamp:   model.TimeOf(doc.LastTimestamp),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastTimestamp.After(entries[j].LastTimestamp)
	})

	return entries, nil
}

// ListMessages retrieves the room's log in append order.
func (repo *chatRepository) ListMessages(ctx context.Context, roomID string) ([]*entity.ChatMessage, error) {
	var docs map[string]model.ChatMessageDoc
	if err := repo.store.Get(ctx, roomMessagesPath(roomID), &docs); err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreExecuteError(err, "failed to list chat messages")
	}

	return sortMessages(docs), nil
}

// WatchMessages streams full message-log snapshots for the room until the
// context is cancelled.
func (repo *chatRepository) WatchMessages(ctx context.Context, roomID string) (<-chan []*entity.ChatMessage, error) {
	snapshots, err := repo.store.Watch(ctx, roomMessagesPath(roomID))
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to watch chat messages")
	}

	out := make(chan []*entity.ChatMessage, 1)
	go func() {
		defer close(out)

		for snapshot := range snapshots {
			docs, err := decodeMessageDocs(snapshot.Value)
			if err != nil {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- sortMessages(docs):
			}
		}
	}()

	return out, nil
}

// --- Mapper Functions ---

func toRoomDomain(roomID string, doc *model.ChatRoomDoc) *entity.ChatRoom {
	return &entity.ChatRoom{
		ID:             roomID,
		ParticipantIDs: doc.Participants,
		LastMessage:    doc.LastMessage,
		LastTimestamp:  model.TimeOf(doc.LastTimestamp),
	}
}

// decodeMessageDocs converts a raw watch snapshot value into message documents.
func decodeMessageDocs(value any) (map[string]model.ChatMessageDoc, error) {
	if value == nil {
		return nil, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "marshal snapshot value")
	}

	var docs map[string]model.ChatMessageDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, errors.Wrap(err, "decode message documents")
	}

	return docs, nil
}

// sortMessages orders the log by push key, which is append order.
func sortMessages(docs map[string]model.ChatMessageDoc) []*entity.ChatMessage {
	messages := make([]*entity.ChatMessage, 0, len(docs))
	for id, doc := range docs {
		messages = append(messages, &entity.ChatMessage{
			ID:        id,
			SenderID:  doc.SenderID,
			Text:      doc.Text,
			Timestamp: model.TimeOf(doc.Timestamp),
		})
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })

	return messages
}
