package realtime

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/fenggwsx/slashdm/internal/metrics"
	"github.com/fenggwsx/slashdm/internal/protocol"
	"github.com/fenggwsx/slashdm/internal/storage"
)

// ChatResolver looks up a chat's participants.
type ChatResolver interface {
	GetChat(ctx context.Context, chatID uint) (*storage.Chat, error)
}

// Broadcaster pushes chat updates to every live connection of both participants.
// It owns no state and never reports failure to its caller.
type Broadcaster struct {
	chats    ChatResolver
	presence *Presence
	log      zerolog.Logger
}

// NewBroadcaster wires a broadcaster over the registry and presence table.
func NewBroadcaster(chats ChatResolver, presence *Presence, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		chats:    chats,
		presence: presence,
		log:      log.With().Str("component", "broadcaster").Logger(),
	}
}

// Notify resolves the chat and fans the update out. Unresolvable chats and
// failed pushes are logged and dropped.
func (b *Broadcaster) Notify(ctx context.Context, chatID uint, update protocol.ChatUpdate) {
	chat, err := b.chats.GetChat(ctx, chatID)
	if err != nil {
		event := b.log.Warn()
		if !errors.Is(err, storage.ErrNotFound) {
			event = b.log.Error()
		}
		event.Err(err).Uint("chat_id", chatID).Str("type", string(update.Type)).Msg("broadcast dropped: chat not resolved")
		return
	}

	update.ChatID = chat.ID
	env := newEnvelope(protocol.MessageTypeChatUpdate, update)
	metrics.RecordBroadcast(string(update.Type))

	participants := lo.Uniq([]uint{chat.Initiator, chat.Recipient})
	targets := lo.FlatMap(participants, func(userID uint, _ int) []Conn {
		return b.presence.ConnectionsFor(userID)
	})

	for _, conn := range targets {
		if err := conn.Push(env); err != nil {
			metrics.RecordDroppedPush()
			b.log.Warn().
				Err(err).
				Uint("chat_id", chat.ID).
				Uint("user_id", conn.UserID()).
				Str("connection_id", conn.ID()).
				Msg("push dropped")
		}
	}

	b.log.Debug().
		Uint("chat_id", chat.ID).
		Str("type", string(update.Type)).
		Int("targets", len(targets)).
		Msg("chat update broadcast")
}
