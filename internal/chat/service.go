//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../mocks/mock_chat.go -package=mocks

// Package chat orchestrates the direct-messaging operations: it validates
// input, enforces participation and ownership, mutates the store and notifies
// live connections after every successful mutation.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/apperr"
	"github.com/fenggwsx/slashdm/internal/protocol"
	"github.com/fenggwsx/slashdm/internal/storage"
)

// Notifier receives chat updates once the triggering mutation has committed.
// Implementations must not block on slow connections.
type Notifier interface {
	Notify(ctx context.Context, chatID uint, update protocol.ChatUpdate)
}

// CreateChatInput opens a chat with a first message.
type CreateChatInput struct {
	RecipientID uint   `validate:"required"`
	Message     string `validate:"required"`
}

// CreateChatResult identifies the new chat and its first message.
type CreateChatResult struct {
	ChatID    uint
	MessageID uint
}

// Service implements the chat and message operations.
type Service struct {
	chats         storage.ChatRegistry
	messages      storage.MessageLedger
	notifier      Notifier
	validate      *validator.Validate
	locks         *chatLocks
	log           zerolog.Logger
	maxMessageLen int
}

// NewService wires the service. maxMessageLen bounds message bodies in runes.
func NewService(chats storage.ChatRegistry, messages storage.MessageLedger, notifier Notifier, maxMessageLen int, log zerolog.Logger) *Service {
	return &Service{
		chats:         chats,
		messages:      messages,
		notifier:      notifier,
		validate:      validator.New(),
		locks:         newChatLocks(),
		log:           log.With().Str("component", "chat").Logger(),
		maxMessageLen: maxMessageLen,
	}
}

// CreateChat opens a chat between actor and the recipient and posts the first
// message. An existing chat for the pair is reported as a conflict carrying its id.
func (s *Service) CreateChat(ctx context.Context, actor uint, in CreateChatInput) (CreateChatResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return CreateChatResult{}, apperr.Validation("recipientId and message are required")
	}
	if in.RecipientID == actor {
		return CreateChatResult{}, apperr.Validation("cannot start a chat with yourself")
	}
	if err := s.validateBody(in.Message); err != nil {
		return CreateChatResult{}, err
	}

	existing, err := s.chats.FindChatByPair(ctx, actor, in.RecipientID)
	switch {
	case err == nil:
		return CreateChatResult{}, apperr.Conflict("chat already exists", existing.ID)
	case !errors.Is(err, storage.ErrNotFound):
		return CreateChatResult{}, s.storageError("find chat by pair", err)
	}

	chat, created, err := s.chats.GetOrCreateChat(ctx, actor, in.RecipientID)
	if err != nil {
		return CreateChatResult{}, s.storageError("get or create chat", err)
	}
	if !created {
		return CreateChatResult{}, apperr.Conflict("chat already exists", chat.ID)
	}

	unlock := s.locks.lock(chat.ID)
	defer unlock()

	msg := &storage.Message{ChatID: chat.ID, Sender: actor, Body: in.Message}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return CreateChatResult{}, s.storageError("create initial message", err)
	}
	s.afterCommit(ctx, chat.ID, protocol.ChatUpdate{
		Type:      protocol.UpdateMessageCreated,
		ChatID:    chat.ID,
		Timestamp: msg.CreatedAt,
		MessageID: msg.ID,
		Message:   msg.Body,
		Sender:    msg.Sender,
	})

	s.log.Info().Uint("chat_id", chat.ID).Uint("initiator", actor).Uint("recipient", in.RecipientID).Msg("chat created")
	return CreateChatResult{ChatID: chat.ID, MessageID: msg.ID}, nil
}

// ListChats returns the actor's chats, most recently active first.
func (s *Service) ListChats(ctx context.Context, actor uint) ([]storage.ChatSummary, error) {
	summaries, err := s.chats.ListChatsForUser(ctx, actor)
	if err != nil {
		return nil, s.storageError("list chats", err)
	}
	return summaries, nil
}

// ListMessages returns the chat's messages oldest first. A chat without
// messages is reported as not found.
func (s *Service) ListMessages(ctx context.Context, actor, chatID uint) ([]storage.Message, error) {
	if _, err := s.participantChat(ctx, actor, chatID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListMessages(ctx, chatID)
	if err != nil {
		return nil, s.storageError("list messages", err)
	}
	if len(messages) == 0 {
		return nil, apperr.NotFound("no messages in chat")
	}
	return messages, nil
}

// PostMessage appends a message from actor to the chat.
func (s *Service) PostMessage(ctx context.Context, actor, chatID uint, body string) (*storage.Message, error) {
	if err := s.validateBody(body); err != nil {
		return nil, err
	}
	if _, err := s.participantChat(ctx, actor, chatID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(chatID)
	defer unlock()

	msg := &storage.Message{ChatID: chatID, Sender: actor, Body: body}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, s.storageError("create message", err)
	}
	s.afterCommit(ctx, chatID, protocol.ChatUpdate{
		Type:      protocol.UpdateMessageCreated,
		ChatID:    chatID,
		Timestamp: msg.CreatedAt,
		MessageID: msg.ID,
		Message:   msg.Body,
		Sender:    msg.Sender,
	})
	return msg, nil
}

// UpdateMessage replaces the body of a message actor sent.
func (s *Service) UpdateMessage(ctx context.Context, actor, chatID, messageID uint, body string) error {
	if err := s.validateBody(body); err != nil {
		return err
	}
	if err := s.ownedMessageGuards(ctx, actor, chatID, messageID); err != nil {
		return err
	}

	unlock := s.locks.lock(chatID)
	defer unlock()

	ok, err := s.messages.UpdateMessage(ctx, messageID, body, actor)
	if err != nil {
		return s.storageError("update message", err)
	}
	if !ok {
		return apperr.Forbidden("not your message")
	}
	s.afterCommit(ctx, chatID, protocol.ChatUpdate{
		Type:      protocol.UpdateMessageUpdated,
		ChatID:    chatID,
		Timestamp: time.Now().UTC(),
		MessageID: messageID,
		Message:   body,
		Sender:    actor,
	})
	return nil
}

// DeleteMessage removes a message actor sent.
func (s *Service) DeleteMessage(ctx context.Context, actor, chatID, messageID uint) error {
	if err := s.ownedMessageGuards(ctx, actor, chatID, messageID); err != nil {
		return err
	}

	unlock := s.locks.lock(chatID)
	defer unlock()

	ok, err := s.messages.DeleteMessage(ctx, messageID, actor)
	if err != nil {
		return s.storageError("delete message", err)
	}
	if !ok {
		return apperr.Forbidden("not your message")
	}
	s.afterCommit(ctx, chatID, protocol.ChatUpdate{
		Type:      protocol.UpdateMessageDeleted,
		ChatID:    chatID,
		Timestamp: time.Now().UTC(),
		MessageID: messageID,
		Sender:    actor,
	})
	return nil
}

// participantChat fetches the chat and checks that actor is one of its two users.
func (s *Service) participantChat(ctx context.Context, actor, chatID uint) (*storage.Chat, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("chat not found")
		}
		return nil, s.storageError("get chat", err)
	}
	if !chat.HasParticipant(actor) {
		return nil, apperr.Forbidden("not a participant of this chat")
	}
	return chat, nil
}

// ownedMessageGuards runs the checks shared by update and delete. The final
// ownership check happens in the guarded mutation itself.
func (s *Service) ownedMessageGuards(ctx context.Context, actor, chatID, messageID uint) error {
	if _, err := s.participantChat(ctx, actor, chatID); err != nil {
		return err
	}

	msg, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("message not found")
		}
		return s.storageError("get message", err)
	}
	if msg.ChatID != chatID {
		return apperr.Validation("message does not belong to this chat")
	}
	return nil
}

func (s *Service) validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return apperr.Validation("message is required")
	}
	if s.maxMessageLen > 0 {
		if err := s.validate.Var(body, fmt.Sprintf("max=%d", s.maxMessageLen)); err != nil {
			return apperr.Validation(fmt.Sprintf("message exceeds %d characters", s.maxMessageLen))
		}
	}
	return nil
}

// afterCommit bumps the chat's activity and notifies its participants. The
// mutation is already persisted, so both steps outlive a canceled request.
func (s *Service) afterCommit(ctx context.Context, chatID uint, update protocol.ChatUpdate) {
	ctx = context.WithoutCancel(ctx)
	s.touch(ctx, chatID)
	s.notifier.Notify(ctx, chatID, update)
}

// touch bumps the chat's activity. A vanished chat is logged, not reported,
// since the mutation that preceded it already committed.
func (s *Service) touch(ctx context.Context, chatID uint) {
	ok, err := s.chats.TouchChat(ctx, chatID)
	if err != nil {
		s.log.Error().Err(err).Uint("chat_id", chatID).Msg("touch chat failed")
		return
	}
	if !ok {
		s.log.Warn().Uint("chat_id", chatID).Msg("touch chat matched no row")
	}
}

func (s *Service) storageError(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("storage failure")
	return apperr.Storage(err)
}
