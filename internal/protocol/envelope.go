package protocol

import (
	"encoding/json"
	"errors"
	"time"
)

// MessageType enumerates high-level protocol intents.
type MessageType string

const (
	MessageTypeAuthRequest  MessageType = "auth_request"
	MessageTypeAuthResponse MessageType = "auth_response"
	MessageTypeAck          MessageType = "ack"
	MessageTypeChatUpdate   MessageType = "chat_update"
	MessageTypePing         MessageType = "ping"
	MessageTypePong         MessageType = "pong"
)

// MetadataToken is the metadata key carrying a credential when the envelope
// token field is empty. It plays the role of a query parameter on the framed transport.
const MetadataToken = "token"

// Envelope wraps every payload sent over the wire.
type Envelope struct {
	ID        string                 `json:"id"`
	Type      MessageType            `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Token     string                 `json:"token,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Payload   interface{}            `json:"payload,omitempty"`
}

// AckPayload represents acknowledgement semantics.
type AckPayload struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

const (
	AckStatusOK    = "ok"
	AckStatusError = "error"
)

// AuthResponse confirms the identity bound to the connection.
type AuthResponse struct {
	UserID       uint   `json:"user_id"`
	ConnectionID string `json:"connection_id"`
}

// UpdateType names the mutation that triggered a chat update.
type UpdateType string

const (
	UpdateMessageCreated UpdateType = "message_created"
	UpdateMessageUpdated UpdateType = "message_updated"
	UpdateMessageDeleted UpdateType = "message_deleted"
)

// ChatUpdate is the payload of every chat_update event.
type ChatUpdate struct {
	Type      UpdateType `json:"type"`
	ChatID    uint       `json:"chatId"`
	Timestamp time.Time  `json:"timestamp"`
	MessageID uint       `json:"messageId"`
	Message   string     `json:"message,omitempty"`
	Sender    uint       `json:"sender,omitempty"`
}

var errEmptyPayload = errors.New("empty payload")

// DecodePayload re-decodes a generic payload into a typed value.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	if payload == nil {
		return out, errEmptyPayload
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
