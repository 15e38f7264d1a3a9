package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fenggwsx/slashdm/internal/apperr"
	"github.com/fenggwsx/slashdm/internal/auth"
	"github.com/fenggwsx/slashdm/internal/chat"
)

// registerChatRoutes mounts the chat and message endpoints on an authenticated group.
func registerChatRoutes(router gin.IRoutes, svc *chat.Service, log zerolog.Logger) {
	router.POST("/chats", createChat(svc, log))
	router.GET("/chats", listChats(svc, log))
	router.GET("/chats/:chatId", listMessages(svc, log))
	router.POST("/chats/:chatId", postMessage(svc, log))
	router.PUT("/chats/:chatId/:messageId", updateMessage(svc, log))
	router.DELETE("/chats/:chatId/:messageId", deleteMessage(svc, log))
}

func createChat(svc *chat.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorID(c)

		var req CreateChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, apperr.Validation("invalid request body"))
			return
		}

		result, err := svc.CreateChat(c.Request.Context(), actor, chat.CreateChatInput{
			RecipientID: req.RecipientID,
			Message:     req.Message,
		})
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusCreated, CreateChatResponse{ChatID: result.ChatID, MessageID: result.MessageID})
	}
}

func listChats(svc *chat.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := svc.ListChats(c.Request.Context(), actorID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}

		resp := ListChatsResponse{Chats: make([]ChatResponse, 0, len(summaries))}
		for _, summary := range summaries {
			resp.Chats = append(resp.Chats, newChatResponse(summary))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func listMessages(svc *chat.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, ok := pathID(c, log, "chatId")
		if !ok {
			return
		}

		messages, err := svc.ListMessages(c.Request.Context(), actorID(c), chatID)
		if err != nil {
			writeError(c, log, err)
			return
		}

		resp := ChatMessagesResponse{ChatID: chatID, Messages: make([]MessageResponse, 0, len(messages))}
		for _, msg := range messages {
			resp.Messages = append(resp.Messages, newMessageResponse(msg))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func postMessage(svc *chat.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, ok := pathID(c, log, "chatId")
		if !ok {
			return
		}
		var req MessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, apperr.Validation("invalid request body"))
			return
		}

		msg, err := svc.PostMessage(c.Request.Context(), actorID(c), chatID, req.Message)
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusCreated, PostMessageResponse{ChatID: chatID, MessageID: msg.ID, CreatedAt: msg.CreatedAt})
	}
}

func updateMessage(svc *chat.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, ok := pathID(c, log, "chatId")
		if !ok {
			return
		}
		messageID, ok := pathID(c, log, "messageId")
		if !ok {
			return
		}
		var req MessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, apperr.Validation("invalid request body"))
			return
		}

		if err := svc.UpdateMessage(c.Request.Context(), actorID(c), chatID, messageID, req.Message); err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, MutationResponse{ChatID: chatID, MessageID: messageID, Status: "updated"})
	}
}

func deleteMessage(svc *chat.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, ok := pathID(c, log, "chatId")
		if !ok {
			return
		}
		messageID, ok := pathID(c, log, "messageId")
		if !ok {
			return
		}

		if err := svc.DeleteMessage(c.Request.Context(), actorID(c), chatID, messageID); err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, MutationResponse{ChatID: chatID, MessageID: messageID, Status: "deleted"})
	}
}

// actorID returns the authenticated user. The auth middleware guarantees presence.
func actorID(c *gin.Context) uint {
	principal, _ := auth.PrincipalFrom(c)
	return principal.UserID
}

func pathID(c *gin.Context, log zerolog.Logger, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		writeError(c, log, apperr.Validation("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
