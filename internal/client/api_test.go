package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/slashdm/internal/config"
)

type recordedRequest struct {
	method        string
	path          string
	authorization string
	body          map[string]interface{}
}

func newTestAPI(t *testing.T, status int, response interface{}) (*APIClient, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.authorization = r.Header.Get("Authorization")
		if r.ContentLength > 0 {
			_ = json.NewDecoder(r.Body).Decode(&recorded.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(server.Close)

	api := NewAPIClient(config.ClientConfig{
		APIURL:         server.URL + "/",
		Token:          "token-123",
		RequestTimeout: 2 * time.Second,
	})
	return api, recorded
}

func TestAPIClient_CreateChat(t *testing.T) {
	t.Run("should post the recipient and message with the bearer token", func(t *testing.T) {
		req := require.New(t)
		api, recorded := newTestAPI(t, http.StatusCreated, map[string]uint{"chatId": 7, "messageId": 11})

		// When
		chatID, messageID, err := api.CreateChat(context.Background(), 2, "Hello")

		// Then
		req.NoError(err)
		req.Equal(uint(7), chatID)
		req.Equal(uint(11), messageID)
		req.Equal(http.MethodPost, recorded.method)
		req.Equal("/v1/chats", recorded.path)
		req.Equal("Bearer token-123", recorded.authorization)
		req.Equal(float64(2), recorded.body["recipientId"])
		req.Equal("Hello", recorded.body["message"])
	})

	t.Run("should surface the existing chat id on conflict", func(t *testing.T) {
		req := require.New(t)
		api, _ := newTestAPI(t, http.StatusConflict, map[string]interface{}{
			"error": map[string]interface{}{"message": "chat already exists", "type": "conflict", "chatId": 7},
		})

		_, _, err := api.CreateChat(context.Background(), 2, "Hello")

		apiErr, ok := asAPIError(err)
		req.True(ok)
		req.True(apiErr.Conflict())
		req.Equal(uint(7), apiErr.ChatID)
		req.Equal("conflict", apiErr.Type)
		req.Contains(apiErr.Error(), "chat already exists")
	})
}

func TestAPIClient_Messages(t *testing.T) {
	t.Run("should decode the message history", func(t *testing.T) {
		req := require.New(t)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		api, recorded := newTestAPI(t, http.StatusOK, map[string]interface{}{
			"chatId": 7,
			"messages": []map[string]interface{}{
				{"messageId": 1, "chatId": 7, "sender": 1, "message": "Hello", "createdAt": created},
			},
		})

		messages, err := api.ListMessages(context.Background(), 7)

		req.NoError(err)
		req.Equal("/v1/chats/7", recorded.path)
		req.Len(messages, 1)
		req.Equal("Hello", messages[0].Message)
		req.True(created.Equal(messages[0].CreatedAt))
	})

	t.Run("should address the message for edits and deletes", func(t *testing.T) {
		req := require.New(t)
		api, recorded := newTestAPI(t, http.StatusOK, map[string]interface{}{"status": "updated"})

		req.NoError(api.UpdateMessage(context.Background(), 7, 3, "fixed"))
		req.Equal(http.MethodPut, recorded.method)
		req.Equal("/v1/chats/7/3", recorded.path)
		req.Equal("fixed", recorded.body["message"])

		req.NoError(api.DeleteMessage(context.Background(), 7, 3))
		req.Equal(http.MethodDelete, recorded.method)
		req.Equal("/v1/chats/7/3", recorded.path)
	})

	t.Run("should report forbidden mutations", func(t *testing.T) {
		req := require.New(t)
		api, _ := newTestAPI(t, http.StatusForbidden, map[string]interface{}{
			"error": map[string]string{"message": "not your message", "type": "forbidden"},
		})

		err := api.UpdateMessage(context.Background(), 7, 3, "fixed")

		apiErr, ok := asAPIError(err)
		req.True(ok)
		req.Equal(http.StatusForbidden, apiErr.Status)
		req.False(apiErr.Conflict())
	})
}

func TestAPIClient_ListChats(t *testing.T) {
	req := require.New(t)
	api, recorded := newTestAPI(t, http.StatusOK, map[string]interface{}{
		"chats": []map[string]interface{}{
			{"chatId": 7, "initiator": 1, "recipient": 2, "lastMessage": map[string]interface{}{"message": "Hi", "sender": 2}},
			{"chatId": 8, "initiator": 3, "recipient": 1},
		},
	})

	chats, err := api.ListChats(context.Background())

	req.NoError(err)
	req.Equal(http.MethodGet, recorded.method)
	req.Len(chats, 2)
	req.NotNil(chats[0].LastMessage)
	req.Equal("Hi", chats[0].LastMessage.Message)
	req.Nil(chats[1].LastMessage)
	req.Equal(uint(2), chats[0].Peer(1))
	req.Equal(uint(3), chats[1].Peer(1))
}
