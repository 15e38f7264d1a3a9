package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fenggwsx/slashdm/internal/storage"
)

type messageModel struct {
	ID           uint      `gorm:"primaryKey"`
	ChatID       uint      `gorm:"not null;index:idx_messages_chat_created,priority:1"`
	Sender       uint      `gorm:"not null"`
	Msg          string    `gorm:"not null"`
	MsgCreatedAt time.Time `gorm:"column:msg_created_at;not null;index:idx_messages_chat_created,priority:2"`
	Chat         chatModel `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

func (messageModel) TableName() string {
	return "messages"
}

func (m messageModel) toMessage() storage.Message {
	return storage.Message{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Sender:    m.Sender,
		Body:      m.Msg,
		CreatedAt: m.MsgCreatedAt,
	}
}

// ListMessages returns a chat's messages oldest first. Ties on the creation
// timestamp fall back to insertion order.
func (s *Store) ListMessages(ctx context.Context, chatID uint) ([]storage.Message, error) {
	var models []messageModel
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("msg_created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, unavailable("list messages", err)
	}

	messages := make([]storage.Message, 0, len(models))
	for _, model := range models {
		messages = append(messages, model.toMessage())
	}
	return messages, nil
}

// CreateMessage stores a message with a server-assigned timestamp. The chat
// must already exist; callers check that first.
func (s *Store) CreateMessage(ctx context.Context, msg *storage.Message) error {
	if msg == nil {
		return errors.New("nil message")
	}
	model := messageModel{
		ChatID:       msg.ChatID,
		Sender:       msg.Sender,
		Msg:          msg.Body,
		MsgCreatedAt: s.db.NowFunc(),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return unavailable("create message", err)
	}
	*msg = model.toMessage()
	return nil
}

// GetMessage retrieves a message by id.
func (s *Store) GetMessage(ctx context.Context, messageID uint) (*storage.Message, error) {
	var model messageModel
	if err := s.db.WithContext(ctx).Where("id = ?", messageID).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, unavailable("get message", err)
	}
	msg := model.toMessage()
	return &msg, nil
}

// UpdateMessage replaces the body when the message exists and actorID is its
// sender. msg_created_at is left untouched.
func (s *Store) UpdateMessage(ctx context.Context, messageID uint, body string, actorID uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("id = ? AND sender = ?", messageID, actorID).
		Update("msg", body)
	if result.Error != nil {
		return false, unavailable("update message", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteMessage hard-deletes the message when actorID is its sender.
func (s *Store) DeleteMessage(ctx context.Context, messageID uint, actorID uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND sender = ?", messageID, actorID).
		Delete(&messageModel{})
	if result.Error != nil {
		return false, unavailable("delete message", result.Error)
	}
	return result.RowsAffected > 0, nil
}
