package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fenggwsx/slashdm/internal/storage"
)

// ErrSamePair is returned when both sides of a pair are the same user.
var ErrSamePair = errors.New("chat participants must differ")

type chatModel struct {
	ID        uint `gorm:"primaryKey"`
	Initiator uint `gorm:"not null;index"`
	Recipient uint `gorm:"not null;index"`
	// PairLow and PairHigh hold the pair in canonical order so the unique
	// index treats {A, B} and {B, A} as the same chat.
	PairLow   uint      `gorm:"not null;uniqueIndex:idx_chats_pair,priority:1"`
	PairHigh  uint      `gorm:"not null;uniqueIndex:idx_chats_pair,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

func (chatModel) TableName() string {
	return "chats"
}

func (m chatModel) toChat() *storage.Chat {
	return &storage.Chat{
		ID:        m.ID,
		Initiator: m.Initiator,
		Recipient: m.Recipient,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type chatSummaryRow struct {
	ID            uint
	Initiator     uint
	Recipient     uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastMessage   *string
	LastMessageAt *time.Time
	LastSender    *uint
}

func orderedPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// GetChat retrieves a chat by id.
func (s *Store) GetChat(ctx context.Context, chatID uint) (*storage.Chat, error) {
	var model chatModel
	if err := s.db.WithContext(ctx).Where("id = ?", chatID).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, unavailable("get chat", err)
	}
	return model.toChat(), nil
}

// FindChatByPair retrieves the chat between two users regardless of who initiated it.
func (s *Store) FindChatByPair(ctx context.Context, userA, userB uint) (*storage.Chat, error) {
	low, high := orderedPair(userA, userB)
	var model chatModel
	err := s.db.WithContext(ctx).
		Where("pair_low = ? AND pair_high = ?", low, high).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, unavailable("find chat by pair", err)
	}
	return model.toChat(), nil
}

// GetOrCreateChat looks up the chat for the pair and inserts it inside one
// transaction. A unique violation means a concurrent caller won the insert, so
// the lookup is retried once outside the failed transaction.
func (s *Store) GetOrCreateChat(ctx context.Context, initiator, recipient uint) (*storage.Chat, bool, error) {
	if initiator == recipient {
		return nil, false, ErrSamePair
	}

	chat, created, err := s.getOrCreateChat(ctx, initiator, recipient)
	if err == nil {
		return chat, created, nil
	}
	if !isUniqueViolation(err) {
		return nil, false, unavailable("get or create chat", err)
	}

	existing, err := s.FindChatByPair(ctx, initiator, recipient)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Store) getOrCreateChat(ctx context.Context, initiator, recipient uint) (*storage.Chat, bool, error) {
	low, high := orderedPair(initiator, recipient)
	var model chatModel
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("pair_low = ? AND pair_high = ?", low, high).Take(&model).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		model = chatModel{
			Initiator: initiator,
			Recipient: recipient,
			PairLow:   low,
			PairHigh:  high,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return model.toChat(), created, nil
}

// TouchChat sets updated_at to now. It reports false when no row matched.
func (s *Store) TouchChat(ctx context.Context, chatID uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&chatModel{}).
		Where("id = ?", chatID).
		Update("updated_at", s.db.NowFunc())
	if result.Error != nil {
		return false, unavailable("touch chat", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListChatsForUser returns the user's chats, most recently active first, each
// annotated with its latest message.
func (s *Store) ListChatsForUser(ctx context.Context, userID uint) ([]storage.ChatSummary, error) {
	var rows []chatSummaryRow
	err := s.db.WithContext(ctx).
		Table("chats AS c").
		Select("c.id, c.initiator, c.recipient, c.created_at, c.updated_at, "+
			"m.msg AS last_message, m.msg_created_at AS last_message_at, m.sender AS last_sender").
		Joins("LEFT JOIN messages AS m ON m.id = ("+
			"SELECT m2.id FROM messages AS m2 WHERE m2.chat_id = c.id "+
			"ORDER BY m2.msg_created_at DESC, m2.id DESC LIMIT 1)").
		Where("c.initiator = ? OR c.recipient = ?", userID, userID).
		Order("c.updated_at DESC, c.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, unavailable("list chats", err)
	}

	summaries := make([]storage.ChatSummary, 0, len(rows))
	for _, row := range rows {
		summary := storage.ChatSummary{
			Chat: storage.Chat{
				ID:        row.ID,
				Initiator: row.Initiator,
				Recipient: row.Recipient,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			LastMessageAt: row.LastMessageAt,
		}
		if row.LastMessage != nil {
			summary.LastMessage = *row.LastMessage
		}
		if row.LastSender != nil {
			summary.LastSender = *row.LastSender
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
