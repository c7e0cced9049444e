package impl

import (
	"context"
	"testing"
	"time"

	"lapak/internal/domain/entity"
	domainerrors "lapak/internal/domain/errors"
	"lapak/internal/domain/service"
	"lapak/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_StartSessionBootstrapsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	chat := f.chatSvc(true)

	first, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.RoomID("alice", "bob"), first.Room.ID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, first.Room.ParticipantIDs)
	assert.Empty(t, first.Messages)

	_, err = chat.SendMessage(ctx, "alice", usecase.SendMessageInput{
		RoomID: first.Room.ID,
		Text:   "halo",
	})
	require.NoError(t, err)

	// Reopening the session from either side must not clobber the metadata.
	again, err := chat.StartSession(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, first.Room.ID, again.Room.ID)
	assert.Equal(t, "halo", again.Room.LastMessage)
	require.Len(t, again.Messages, 1)
}

func TestChatService_StartSessionRefreshesCounterpartName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	chat := f.chatSvc(true)
	profile := f.profileSvc(&stubReauth{password: "rahasia"})

	session, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = chat.SendMessage(ctx, "alice", usecase.SendMessageInput{
		RoomID: session.Room.ID,
		Text:   "halo",
	})
	require.NoError(t, err)

	_, err = profile.UpdateProfile(ctx, "bob", usecase.UpdateProfileInput{
		Username: strptr("bobby"),
	})
	require.NoError(t, err)

	// Reopening the session picks up the rename on both sides without
	// touching the last activity.
	_, err = chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	aliceIndex, err := chat.ListIndex(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceIndex, 1)
	assert.Equal(t, "bobby", aliceIndex[0].CounterpartName)
	assert.Equal(t, "halo", aliceIndex[0].LastMessage)

	bobIndex, err := chat.ListIndex(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobIndex, 1)
	assert.Equal(t, "user-alice", bobIndex[0].CounterpartName)
	assert.Equal(t, "halo", bobIndex[0].LastMessage)
}

func TestChatService_StartSessionValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	chat := f.chatSvc(true)

	_, err := chat.StartSession(ctx, "alice", "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = chat.StartSession(ctx, "alice", "alice")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = chat.StartSession(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestChatService_SendMessageRequiresMembership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	f.seedUser(t, "eve", entity.RoleCustomer)
	chat := f.chatSvc(true)

	session, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = chat.SendMessage(ctx, "eve", usecase.SendMessageInput{
		RoomID: session.Room.ID,
		Text:   "let me in",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = chat.ListMessages(ctx, "eve", session.Room.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = chat.SendMessage(ctx, "alice", usecase.SendMessageInput{RoomID: "no-room", Text: "hi"})
	assert.ErrorIs(t, err, domainerrors.ErrRoomNotFound)
}

func TestChatService_InlineFanOutUpdatesBothIndexes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	chat := f.chatSvc(true)

	session, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = chat.SendMessage(ctx, "alice", usecase.SendMessageInput{
		RoomID: session.Room.ID,
		Text:   "pesanan saya sudah dikirim?",
	})
	require.NoError(t, err)

	aliceIndex, err := chat.ListIndex(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceIndex, 1)
	assert.Equal(t, "bob", aliceIndex[0].CounterpartID)
	assert.Equal(t, "pesanan saya sudah dikirim?", aliceIndex[0].LastMessage)

	bobIndex, err := chat.ListIndex(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobIndex, 1)
	assert.Equal(t, "alice", bobIndex[0].CounterpartID)
	assert.Equal(t, "user-alice", bobIndex[0].CounterpartName)
	assert.Equal(t, "pesanan saya sudah dikirim?", bobIndex[0].LastMessage)
}

func TestChatService_PublishedFanOutCarriesEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	chat := f.chatSvc(false)

	session, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = chat.SendMessage(ctx, "alice", usecase.SendMessageInput{
		RoomID: session.Room.ID,
		Text:   "halo",
	})
	require.NoError(t, err)

	events := f.publisher.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, service.EventKindChatMessage, last.Kind)
	assert.Equal(t, session.Room.ID, last.RoomID)
	assert.Equal(t, "alice", last.SenderID)
	assert.Equal(t, "bob", last.ReceiverID)
	assert.Equal(t, "halo", last.Text)

	// The counterpart index entry is only written once the worker applies it.
	bobIndex, err := chat.ListIndex(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobIndex)

	require.NoError(t, chat.ApplyMessageFanOut(ctx, &usecase.FanOutEvent{
		RoomID:     last.RoomID,
		SenderID:   last.SenderID,
		SenderName: last.SenderName,
		ReceiverID: last.ReceiverID,
		Text:       last.Text,
	}))

	bobIndex, err = chat.ListIndex(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobIndex, 1)
	assert.Equal(t, "halo", bobIndex[0].LastMessage)
}

func TestChatService_MessagesKeepSendOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	chat := f.chatSvc(true)

	session, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	texts := []string{"satu", "dua", "tiga"}
	for _, text := range texts {
		msg, err := chat.SendMessage(ctx, "alice", usecase.SendMessageInput{
			RoomID: session.Room.ID,
			Text:   text,
		})
		require.NoError(t, err)
		assert.False(t, msg.Timestamp.IsZero())
	}

	messages, err := chat.ListMessages(ctx, "bob", session.Room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, text := range texts {
		assert.Equal(t, text, messages[i].Text)
	}
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp))
	}
}

func TestChatService_StreamDeliversSnapshots(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture()
	f.seedUser(t, "alice", entity.RoleCustomer)
	f.seedUser(t, "bob", entity.RolePengelola)
	chat := f.chatSvc(true)

	session, err := chat.StartSession(ctx, "alice", "bob")
	require.NoError(t, err)

	stream, err := chat.StreamMessages(ctx, "bob", session.Room.ID)
	require.NoError(t, err)

	// Initial snapshot of the empty log.
	select {
	case snapshot := <-stream:
		assert.Empty(t, snapshot)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	_, err = chat.SendMessage(ctx, "alice", usecase.SendMessageInput{
		RoomID: session.Room.ID,
		Text:   "halo",
	})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot := <-stream:
			if len(snapshot) == 1 && snapshot[0].Text == "halo" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for message snapshot")
		}
	}
}
