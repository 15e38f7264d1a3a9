package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fenggwsx/slashdm/internal/config"
)

// ChatSummary is one row of the chat list.
type ChatSummary struct {
	ChatID      uint         `json:"chatId"`
	Initiator   uint         `json:"initiator"`
	Recipient   uint         `json:"recipient"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	LastMessage *LastMessage `json:"lastMessage"`
}

// Peer returns the other participant from userID's point of view.
func (c ChatSummary) Peer(userID uint) uint {
	if c.Initiator == userID {
		return c.Recipient
	}
	return c.Initiator
}

type LastMessage struct {
	Message   string    `json:"message"`
	Sender    uint      `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	MessageID uint      `json:"messageId"`
	ChatID    uint      `json:"chatId"`
	Sender    uint      `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type createChatResult struct {
	ChatID    uint `json:"chatId"`
	MessageID uint `json:"messageId"`
}

type postMessageResult struct {
	MessageID uint `json:"messageId"`
}

type chatList struct {
	Chats []ChatSummary `json:"chats"`
}

type messageList struct {
	Messages []Message `json:"messages"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		ChatID  uint   `json:"chatId"`
	} `json:"error"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Type    string
	Message string
	ChatID  uint
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Conflict reports whether the server refused a duplicate chat.
func (e *APIError) Conflict() bool {
	return e.Status == http.StatusConflict
}

// APIClient calls the chat HTTP API with the configured bearer token.
type APIClient struct {
	http *resty.Client
}

// NewAPIClient builds a client for cfg.APIURL.
func NewAPIClient(cfg config.ClientConfig) *APIClient {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.RequestTimeout > 0 {
		httpClient.SetTimeout(cfg.RequestTimeout)
	}
	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}
	return &APIClient{http: httpClient}
}

func (c *APIClient) CreateChat(ctx context.Context, recipientID uint, message string) (uint, uint, error) {
	var out createChatResult
	body := map[string]interface{}{"recipientId": recipientID, "message": message}
	if err := c.do(ctx, http.MethodPost, "/v1/chats", body, &out); err != nil {
		return 0, 0, err
	}
	return out.ChatID, out.MessageID, nil
}

func (c *APIClient) ListChats(ctx context.Context) ([]ChatSummary, error) {
	var out chatList
	if err := c.do(ctx, http.MethodGet, "/v1/chats", nil, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

func (c *APIClient) ListMessages(ctx context.Context, chatID uint) ([]Message, error) {
	var out messageList
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/chats/%d", chatID), nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *APIClient) PostMessage(ctx context.Context, chatID uint, message string) (uint, error) {
	var out postMessageResult
	body := map[string]string{"message": message}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/chats/%d", chatID), body, &out); err != nil {
		return 0, err
	}
	return out.MessageID, nil
}

func (c *APIClient) UpdateMessage(ctx context.Context, chatID, messageID uint, message string) error {
	body := map[string]string{"message": message}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/chats/%d/%d", chatID, messageID), body, nil)
}

func (c *APIClient) DeleteMessage(ctx context.Context, chatID, messageID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/chats/%d/%d", chatID, messageID), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var apiErr errorEnvelope
	req := c.http.R().SetContext(ctx).SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &APIError{
			Status:  resp.StatusCode(),
			Type:    apiErr.Error.Type,
			Message: apiErr.Error.Message,
			ChatID:  apiErr.Error.ChatID,
		}
	}
	return nil
}
