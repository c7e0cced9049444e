package impl

import (
	"context"
	"log/slog"

	deliverycontext "lapak/internal/delivery/context"
	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/repository"
	"lapak/internal/domain/service"
	"lapak/internal/usecase"

	"github.com/pkg/errors"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	chatRepo   repository.ChatRepository
	authorizer usecase.Authorizer
	publisher  service.EventPublisher

	// inlineFanOut makes the service write the counterpart index entry
	// itself when no worker consumes published events.
	inlineFanOut bool
	logger       *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(
	chatRepo repository.ChatRepository,
	authorizer usecase.Authorizer,
	publisher service.EventPublisher,
	inlineFanOut bool,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return &chatService{
		chatRepo:     chatRepo,
		authorizer:   authorizer,
		publisher:    publisher,
		inlineFanOut: inlineFanOut,
		logger:       logger,
	}
}

// StartSession resolves the deterministic room for the pair, bootstraps the
// shared metadata exactly once, upserts both participants' index entries and
// returns the current log. Repeat calls merge only the counterpart identity
// into the entries, so the room's last activity is never clobbered.
func (srv *chatService) StartSession(ctx context.Context, senderID, receiverID string) (*usecase.StartSessionOutput, error) {
	if receiverID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("receiver is required")
	}
	if receiverID == senderID {
		return nil, domainerrors.ErrValidationFailed.WithDetails("cannot chat with yourself")
	}

	sender, err := srv.authorizer.Resolve(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}

	receiver, err := srv.authorizer.Resolve(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	roomID := entity.RoomID(senderID, receiverID)
	room := &entity.ChatRoom{
		ID:             roomID,
		ParticipantIDs: []string{senderID, receiverID},
	}

	created, err := srv.chatRepo.BootstrapRoom(ctx, room)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bootstrap chat room")
	}

	if created {
		if err := srv.chatRepo.UpsertIndexEntry(ctx, senderID, &entity.ChatIndexEntry{
			RoomID:          roomID,
			CounterpartID:   receiverID,
			CounterpartName: receiver.Username,
		}); err != nil {
			return nil, errors.Wrap(err, "failed to write chat index entry")
		}

		srv.fanOut(ctx, &usecase.FanOutEvent{
			RoomID:     roomID,
			SenderID:   senderID,
			SenderName: sender.Username,
			ReceiverID: receiverID,
		})

		log(ctx, srv.logger).InfoContext(ctx, "chat room created",
			slog.String("room_id", roomID),
		)
	} else {
		// Existing room: refresh both counterpart identities so renames show
		// up and a missed fan-out write gets repaired.
		if err := srv.chatRepo.RefreshIndexEntry(ctx, senderID, &entity.ChatIndexEntry{
			RoomID:          roomID,
			CounterpartID:   receiverID,
			CounterpartName: receiver.Username,
		}); err != nil {
			return nil, errors.Wrap(err, "failed to refresh chat index entry")
		}

		if err := srv.chatRepo.RefreshIndexEntry(ctx, receiverID, &entity.ChatIndexEntry{
			RoomID:          roomID,
			CounterpartID:   senderID,
			CounterpartName: sender.Username,
		}); err != nil {
			return nil, errors.Wrap(err, "failed to refresh chat index entry")
		}
	}

	current, err := srv.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read chat room")
	}

	messages, err := srv.chatRepo.ListMessages(ctx, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read chat log")
	}

	return &usecase.StartSessionOutput{Room: current, Messages: messages}, nil
}

// SendMessage appends one message with a server-assigned timestamp and
// refreshes the room metadata and the sender's index entry.
func (srv *chatService) SendMessage(ctx context.Context, senderID string, input usecase.SendMessageInput) (*entity.ChatMessage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	sender, err := srv.authorizer.Resolve(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Blocked {
		return nil, domainerrors.ErrUserBlocked
	}

	room, err := srv.requireMembership(ctx, senderID, input.RoomID)
	if err != nil {
		return nil, err
	}

	key, err := srv.chatRepo.AppendMessage(ctx, input.RoomID, senderID, input.Text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to append message")
	}

	if err := srv.chatRepo.TouchRoom(ctx, input.RoomID, input.Text); err != nil {
		return nil, errors.Wrap(err, "failed to update room metadata")
	}

	receiverID := counterpartOf(room, senderID)
	receiverName := ""
	if receiver, err := srv.authorizer.Resolve(ctx, receiverID); err == nil {
		receiverName = receiver.Username
	}

	if err := srv.chatRepo.UpsertIndexEntry(ctx, senderID, &entity.ChatIndexEntry{
		RoomID:          input.RoomID,
		CounterpartID:   receiverID,
		CounterpartName: receiverName,
		LastMessage:     input.Text,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to update sender index")
	}

	srv.fanOut(ctx, &usecase.FanOutEvent{
		RoomID:     input.RoomID,
		SenderID:   senderID,
		SenderName: sender.Username,
		ReceiverID: receiverID,
		Text:       input.Text,
	})

	return srv.readBack(ctx, input.RoomID, key, senderID, input.Text)
}

// ListIndex retrieves the caller's room listing, most recent first.
func (srv *chatService) ListIndex(ctx context.Context, userID string) ([]*entity.ChatIndexEntry, error) {
	entries, err := srv.chatRepo.ListIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chat index")
	}

	return entries, nil
}

// ListMessages retrieves the room's log for a participant.
func (srv *chatService) ListMessages(ctx context.Context, userID, roomID string) ([]*entity.ChatMessage, error) {
	if _, err := srv.requireMembership(ctx, userID, roomID); err != nil {
		return nil, err
	}

	messages, err := srv.chatRepo.ListMessages(ctx, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return messages, nil
}

// StreamMessages streams full log snapshots for a participant.
func (srv *chatService) StreamMessages(ctx context.Context, userID, roomID string) (<-chan []*entity.ChatMessage, error) {
	if _, err := srv.requireMembership(ctx, userID, roomID); err != nil {
		return nil, err
	}

	stream, err := srv.chatRepo.WatchMessages(ctx, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to watch messages")
	}

	return stream, nil
}

// ApplyMessageFanOut performs the trusted-path counterpart index write for a
// published chat event.
func (srv *chatService) ApplyMessageFanOut(ctx context.Context, event *usecase.FanOutEvent) error {
	if event.RoomID == "" || event.ReceiverID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("fan-out event is missing room or receiver")
	}

	entry := &entity.ChatIndexEntry{
		RoomID:          event.RoomID,
		CounterpartID:   event.SenderID,
		CounterpartName: event.SenderName,
		LastMessage:     event.Text,
	}
	if err := srv.chatRepo.UpsertIndexEntry(ctx, event.ReceiverID, entry); err != nil {
		return errors.Wrap(err, "failed to write counterpart index")
	}

	return nil
}

// fanOut routes the counterpart index write: through the event pipeline when
// a worker consumes it, inline otherwise.
func (srv *chatService) fanOut(ctx context.Context, event *usecase.FanOutEvent) {
	if srv.inlineFanOut {
		if err := srv.ApplyMessageFanOut(ctx, event); err != nil {
			log(ctx, srv.logger).WarnContext(ctx, "inline chat fan-out failed",
				slog.String("room_id", event.RoomID),
				slog.Any("error", err),
			)
		}

		return
	}

	storeEvent := &service.StoreEvent{
		Kind:       service.EventKindChatMessage,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		RoomID:     event.RoomID,
		SenderID:   event.SenderID,
		SenderName: event.SenderName,
		ReceiverID: event.ReceiverID,
		Text:       event.Text,
	}
	if err := srv.publisher.PublishStoreEvent(ctx, storeEvent); err != nil {
		log(ctx, srv.logger).WarnContext(ctx, "failed to publish chat event",
			slog.String("room_id", event.RoomID),
			slog.Any("error", err),
		)
	}
}

func (srv *chatService) requireMembership(ctx context.Context, userID, roomID string) (*entity.ChatRoom, error) {
	room, err := srv.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, domainerrors.ErrRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to read chat room")
	}
	if !room.HasParticipant(userID) {
		return nil, domainerrors.ErrForbidden.WithDetails("not a participant of this room")
	}

	return room, nil
}

// readBack fetches the appended message so the caller sees the
// server-assigned timestamp.
func (srv *chatService) readBack(ctx context.Context, roomID, key, senderID, text string) (*entity.ChatMessage, error) {
	messages, err := srv.chatRepo.ListMessages(ctx, roomID)
	if err == nil {
		for _, message := range messages {
			if message.ID == key {
				return message, nil
			}
		}
	}

	return &entity.ChatMessage{ID: key, SenderID: senderID, Text: text}, nil
}

func counterpartOf(room *entity.ChatRoom, userID string) string {
	for _, id := range room.ParticipantIDs {
		if id != userID {
			return id
		}
	}

	return ""
}
