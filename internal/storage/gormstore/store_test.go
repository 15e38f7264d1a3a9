package gormstore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "slashdm.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetOrCreateChat(t *testing.T) {
	ctx := context.Background()

	t.Run("should treat the pair as unordered", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		// When
		first, created, err := store.GetOrCreateChat(ctx, 1, 2)
		req.NoError(err)
		req.True(created)

		second, created, err := store.GetOrCreateChat(ctx, 2, 1)

		// Then
		req.NoError(err)
		req.False(created)
		req.Equal(first.ID, second.ID)
		req.Equal(uint(1), second.Initiator)
		req.Equal(uint(2), second.Recipient)

		found, err := store.FindChatByPair(ctx, 2, 1)
		req.NoError(err)
		req.Equal(first.ID, found.ID)
	})

	t.Run("should reject a self pair", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		_, _, err := store.GetOrCreateChat(ctx, 3, 3)

		req.ErrorIs(err, ErrSamePair)
	})

	t.Run("should create exactly one chat under concurrent calls", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		const callers = 8
		ids := make([]uint, callers)
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				a, b := uint(10), uint(20)
				if i%2 == 1 {
					a, b = b, a
				}
				chat, _, err := store.GetOrCreateChat(ctx, a, b)
				errs[i] = err
				if chat != nil {
					ids[i] = chat.ID
				}
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			req.NoError(errs[i])
			req.Equal(ids[0], ids[i])
		}

		var count int64
		req.NoError(store.db.Model(&chatModel{}).Count(&count).Error)
		req.Equal(int64(1), count)
	})
}

func TestStore_FindChatByPair_NotFound(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	_, err := store.FindChatByPair(context.Background(), 1, 2)

	req.ErrorIs(err, storage.ErrNotFound)
}

func TestStore_GetChat_NotFound(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	_, err := store.GetChat(context.Background(), 42)

	req.ErrorIs(err, storage.ErrNotFound)
}

func TestStore_TouchChat(t *testing.T) {
	ctx := context.Background()

	t.Run("should advance updated_at", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)
		chat, _, err := store.GetOrCreateChat(ctx, 1, 2)
		req.NoError(err)

		ok, err := store.TouchChat(ctx, chat.ID)

		req.NoError(err)
		req.True(ok)
		touched, err := store.GetChat(ctx, chat.ID)
		req.NoError(err)
		req.False(touched.UpdatedAt.Before(chat.UpdatedAt))
	})

	t.Run("should report false for a missing chat", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		ok, err := store.TouchChat(ctx, 999)

		req.NoError(err)
		req.False(ok)
	})
}

func TestStore_ListChatsForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should order by activity and carry the latest message", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		// Given
		older, _, err := store.GetOrCreateChat(ctx, 1, 2)
		req.NoError(err)
		newer, _, err := store.GetOrCreateChat(ctx, 3, 1)
		req.NoError(err)
		_, _, err = store.GetOrCreateChat(ctx, 4, 5)
		req.NoError(err)

		req.NoError(store.CreateMessage(ctx, &storage.Message{ChatID: older.ID, Sender: 1, Body: "first"}))
		req.NoError(store.CreateMessage(ctx, &storage.Message{ChatID: older.ID, Sender: 2, Body: "second"}))
		_, err = store.TouchChat(ctx, older.ID)
		req.NoError(err)

		// When
		summaries, err := store.ListChatsForUser(ctx, 1)

		// Then
		req.NoError(err)
		req.Len(summaries, 2)
		req.Equal(older.ID, summaries[0].ID)
		req.Equal("second", summaries[0].LastMessage)
		req.Equal(uint(2), summaries[0].LastSender)
		req.NotNil(summaries[0].LastMessageAt)

		req.Equal(newer.ID, summaries[1].ID)
		req.Empty(summaries[1].LastMessage)
		req.Nil(summaries[1].LastMessageAt)
	})

	t.Run("should return an empty list for a user without chats", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		summaries, err := store.ListChatsForUser(ctx, 7)

		req.NoError(err)
		req.Empty(summaries)
	})
}

func TestStore_Messages(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep creation order after an edit", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)
		chat, _, err := store.GetOrCreateChat(ctx, 1, 2)
		req.NoError(err)

		first := &storage.Message{ChatID: chat.ID, Sender: 1, Body: "hello"}
		second := &storage.Message{ChatID: chat.ID, Sender: 2, Body: "hi"}
		req.NoError(store.CreateMessage(ctx, first))
		req.NoError(store.CreateMessage(ctx, second))
		req.NotZero(first.ID)
		req.False(first.CreatedAt.IsZero())

		ok, err := store.UpdateMessage(ctx, first.ID, "hello again", 1)
		req.NoError(err)
		req.True(ok)

		messages, err := store.ListMessages(ctx, chat.ID)
		req.NoError(err)
		req.Len(messages, 2)
		req.Equal(first.ID, messages[0].ID)
		req.Equal("hello again", messages[0].Body)
		req.Equal(second.ID, messages[1].ID)
	})

	t.Run("should only let the sender mutate a message", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)
		chat, _, err := store.GetOrCreateChat(ctx, 1, 2)
		req.NoError(err)
		msg := &storage.Message{ChatID: chat.ID, Sender: 1, Body: "mine"}
		req.NoError(store.CreateMessage(ctx, msg))

		ok, err := store.UpdateMessage(ctx, msg.ID, "hijacked", 2)
		req.NoError(err)
		req.False(ok)

		ok, err = store.DeleteMessage(ctx, msg.ID, 2)
		req.NoError(err)
		req.False(ok)

		stored, err := store.GetMessage(ctx, msg.ID)
		req.NoError(err)
		req.Equal("mine", stored.Body)

		ok, err = store.DeleteMessage(ctx, msg.ID, 1)
		req.NoError(err)
		req.True(ok)

		_, err = store.GetMessage(ctx, msg.ID)
		req.ErrorIs(err, storage.ErrNotFound)
	})

	t.Run("should return an empty slice for a chat without messages", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)
		chat, _, err := store.GetOrCreateChat(ctx, 1, 2)
		req.NoError(err)

		messages, err := store.ListMessages(ctx, chat.ID)

		req.NoError(err)
		req.Empty(messages)
	})

	t.Run("should report false when mutating a missing message", func(t *testing.T) {
		req := require.New(t)
		store := newTestStore(t)

		ok, err := store.UpdateMessage(ctx, 404, "x", 1)
		req.NoError(err)
		req.False(ok)

		ok, err = store.DeleteMessage(ctx, 404, 1)
		req.NoError(err)
		req.False(ok)
	})
}

func TestStore_Ping(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	req.NoError(store.Ping(context.Background()))
}
