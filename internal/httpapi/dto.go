package httpapi

import (
	"time"

	"github.com/fenggwsx/slashdm/internal/storage"
)

// CreateChatRequest opens a chat with a first message.
type CreateChatRequest struct {
	RecipientID uint   `json:"recipientId"`
	Message     string `json:"message"`
}

// MessageRequest carries a message body for post and edit.
type MessageRequest struct {
	Message string `json:"message"`
}

type CreateChatResponse struct {
	ChatID    uint `json:"chatId"`
	MessageID uint `json:"messageId"`
}

type PostMessageResponse struct {
	ChatID    uint      `json:"chatId"`
	MessageID uint      `json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageResponse struct {
	MessageID uint      `json:"messageId"`
	ChatID    uint      `json:"chatId"`
	Sender    uint      `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatMessagesResponse struct {
	ChatID   uint              `json:"chatId"`
	Messages []MessageResponse `json:"messages"`
}

// LastMessage previews the newest message of a chat.
type LastMessage struct {
	Message   string    `json:"message"`
	Sender    uint      `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatResponse struct {
	ChatID      uint         `json:"chatId"`
	Initiator   uint         `json:"initiator"`
	Recipient   uint         `json:"recipient"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	LastMessage *LastMessage `json:"lastMessage"`
}

type ListChatsResponse struct {
	Chats []ChatResponse `json:"chats"`
}

type MutationResponse struct {
	ChatID    uint   `json:"chatId"`
	MessageID uint   `json:"messageId"`
	Status    string `json:"status"`
}

func newMessageResponse(msg storage.Message) MessageResponse {
	return MessageResponse{
		MessageID: msg.ID,
		ChatID:    msg.ChatID,
		Sender:    msg.Sender,
		Message:   msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}

func newChatResponse(summary storage.ChatSummary) ChatResponse {
	resp := ChatResponse{
		ChatID:    summary.ID,
		Initiator: summary.Initiator,
		Recipient: summary.Recipient,
		CreatedAt: summary.CreatedAt,
		UpdatedAt: summary.UpdatedAt,
	}
	if summary.LastMessageAt != nil {
		resp.LastMessage = &LastMessage{
			Message:   summary.LastMessage,
			Sender:    summary.LastSender,
			CreatedAt: *summary.LastMessageAt,
		}
	}
	return resp
}
