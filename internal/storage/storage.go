//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=../mocks/mock_storage.go -package=mocks

package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable wraps every failure of the underlying store.
	ErrUnavailable = errors.New("storage unavailable")
)

// Chat is a deduplicated pairing of two users.
type Chat struct {
	ID        uint
	Initiator uint
	Recipient uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParticipant reports whether userID is the initiator or the recipient.
func (c Chat) HasParticipant(userID uint) bool {
	return c.Initiator == userID || c.Recipient == userID
}

// ChatSummary is a chat annotated with its most recent message, if any.
type ChatSummary struct {
	Chat
	LastMessage   string
	LastMessageAt *time.Time
	LastSender    uint
}

// Message is a single text message inside a chat.
type Message struct {
	ID        uint
	ChatID    uint
	Sender    uint
	Body      string
	CreatedAt time.Time
}

// ChatRegistry owns the Chat entity.
type ChatRegistry interface {
	GetChat(ctx context.Context, chatID uint) (*Chat, error)
	FindChatByPair(ctx context.Context, userA, userB uint) (*Chat, error)
	// GetOrCreateChat returns the chat for the unordered pair, creating it when absent.
	GetOrCreateChat(ctx context.Context, userA, userB uint) (*Chat, bool, error)
	// TouchChat bumps updated_at. false means the chat no longer exists.
	TouchChat(ctx context.Context, chatID uint) (bool, error)
	ListChatsForUser(ctx context.Context, userID uint) ([]ChatSummary, error)
}

// MessageLedger owns the Message entity. Update and delete are guarded by the
// sender predicate; false means no row matched both id and sender.
type MessageLedger interface {
	ListMessages(ctx context.Context, chatID uint) ([]Message, error)
	CreateMessage(ctx context.Context, msg *Message) error
	GetMessage(ctx context.Context, messageID uint) (*Message, error)
	UpdateMessage(ctx context.Context, messageID uint, body string, actorID uint) (bool, error)
	DeleteMessage(ctx context.Context, messageID uint, actorID uint) (bool, error)
}

// Store defines persistence operations used by the server.
type Store interface {
	ChatRegistry
	MessageLedger

	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
