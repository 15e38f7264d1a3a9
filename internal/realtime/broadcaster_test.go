package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fenggwsx/slashdm/internal/mocks"
	"github.com/fenggwsx/slashdm/internal/protocol"
	"github.com/fenggwsx/slashdm/internal/storage"
)

func TestBroadcaster_Notify(t *testing.T) {
	ctx := context.Background()
	update := protocol.ChatUpdate{
		Type:      protocol.UpdateMessageCreated,
		ChatID:    9,
		Timestamp: time.Now().UTC(),
		MessageID: 3,
		Message:   "hi",
		Sender:    1,
	}

	t.Run("should reach every connection of both participants", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockChatRegistry(ctrl)
		presence := NewPresence()
		broadcaster := NewBroadcaster(registry, presence, zerolog.Nop())

		// Given
		senderLaptop := newRecordingConn("a-laptop", 1)
		senderPhone := newRecordingConn("a-phone", 1)
		recipient := newRecordingConn("b", 2)
		outsider := newRecordingConn("c", 3)
		for _, conn := range []*recordingConn{senderLaptop, senderPhone, recipient, outsider} {
			presence.Register(conn.UserID(), conn)
		}
		registry.EXPECT().GetChat(gomock.Any(), uint(9)).Return(&storage.Chat{ID: 9, Initiator: 1, Recipient: 2}, nil)

		// When
		broadcaster.Notify(ctx, 9, update)

		// Then
		for _, conn := range []*recordingConn{senderLaptop, senderPhone, recipient} {
			envs := conn.envelopes()
			req.Len(envs, 1, conn.ID())
			req.Equal(protocol.MessageTypeChatUpdate, envs[0].Type)
			req.Equal(update, envs[0].Payload)
		}
		req.Empty(outsider.envelopes())
	})

	t.Run("should drop the event when the chat cannot be resolved", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockChatRegistry(ctrl)
		presence := NewPresence()
		broadcaster := NewBroadcaster(registry, presence, zerolog.Nop())
		conn := newRecordingConn("a", 1)
		presence.Register(1, conn)
		registry.EXPECT().GetChat(gomock.Any(), uint(9)).Return(nil, storage.ErrNotFound)

		broadcaster.Notify(ctx, 9, update)

		req.Empty(conn.envelopes())
	})

	t.Run("should keep delivering when one connection fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockChatRegistry(ctrl)
		presence := NewPresence()
		broadcaster := NewBroadcaster(registry, presence, zerolog.Nop())

		dead := newRecordingConn("dead", 1)
		dead.err = errors.New("broken pipe")
		alive := newRecordingConn("alive", 2)
		presence.Register(1, dead)
		presence.Register(2, alive)
		registry.EXPECT().GetChat(gomock.Any(), uint(9)).Return(&storage.Chat{ID: 9, Initiator: 1, Recipient: 2}, nil)

		broadcaster.Notify(ctx, 9, update)

		req.Len(alive.envelopes(), 1)
	})

	t.Run("should succeed silently when nobody is online", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockChatRegistry(ctrl)
		broadcaster := NewBroadcaster(registry, NewPresence(), zerolog.Nop())
		registry.EXPECT().GetChat(gomock.Any(), uint(9)).Return(&storage.Chat{ID: 9, Initiator: 1, Recipient: 2}, nil)

		broadcaster.Notify(ctx, 9, update)
	})
}

func TestSession_Push(t *testing.T) {
	t.Run("should refuse when the buffer is full", func(t *testing.T) {
		req := require.New(t)
		sess := newSession(1, nil, 1)

		req.NoError(sess.Push(protocol.Envelope{ID: "1"}))
		req.ErrorIs(sess.Push(protocol.Envelope{ID: "2"}), ErrSendBufferFull)
	})

	t.Run("should refuse after close", func(t *testing.T) {
		req := require.New(t)
		sess := newSession(1, nil, 4)
		sess.close()
		sess.close()

		req.ErrorIs(sess.Push(protocol.Envelope{ID: "1"}), ErrConnectionClosed)
	})
}
