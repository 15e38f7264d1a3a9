package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenggwsx/slashdm/internal/protocol"
)

type connectResultMsg struct {
	session *Session
	bound   protocol.AuthResponse
	err     error
}

type sessionEnvelopeMsg struct {
	session  *Session
	envelope protocol.Envelope
}

type sessionClosedMsg struct {
	session *Session
	err     error
}

type chatsLoadedMsg struct {
	chats []ChatSummary
	err   error
}

type messagesLoadedMsg struct {
	chatID   uint
	messages []Message
	err      error
}

type apiResultMsg struct {
	action   string
	chatID   uint
	existing bool
	err      error
}

func (a *App) connectCmd() tea.Cmd {
	session := NewSession(a.pushAddr, a.cfg.Token)
	return func() tea.Msg {
		bound, err := session.Connect(context.Background())
		return connectResultMsg{session: session, bound: bound, err: err}
	}
}

func waitForEnvelope(session *Session) tea.Cmd {
	return func() tea.Msg {
		env, ok := <-session.Messages()
		if !ok {
			return sessionClosedMsg{session: session, err: session.Err()}
		}
		return sessionEnvelopeMsg{session: session, envelope: env}
	}
}

func (a *App) loadChatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		chats, err := a.api.ListChats(ctx)
		return chatsLoadedMsg{chats: chats, err: err}
	}
}

func (a *App) loadMessagesCmd(chatID uint) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		messages, err := a.api.ListMessages(ctx, chatID)
		return messagesLoadedMsg{chatID: chatID, messages: messages, err: err}
	}
}

func (a *App) apiCmd(action string, chatID uint, call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		return apiResultMsg{action: action, chatID: chatID, err: call(ctx)}
	}
}

func (a *App) handleConnectResult(msg connectResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.online = false
		a.setError(fmt.Sprintf("push connection failed: %v", msg.err))
		return a, nil
	}
	a.closeSession()
	a.session = msg.session
	a.online = true
	a.userID = msg.bound.UserID
	a.setInfo(fmt.Sprintf("connected as user %d", msg.bound.UserID))
	a.updateViewportContent()
	return a, waitForEnvelope(msg.session)
}

func (a *App) handleEnvelope(msg sessionEnvelopeMsg) (tea.Model, tea.Cmd) {
	if msg.session != a.session {
		return a, nil
	}
	next := waitForEnvelope(msg.session)
	if msg.envelope.Type != protocol.MessageTypeChatUpdate {
		return a, next
	}

	update, err := protocol.DecodePayload[protocol.ChatUpdate](msg.envelope.Payload)
	if err != nil {
		a.setError(fmt.Sprintf("malformed chat update: %v", err))
		return a, next
	}
	a.setInfo(describeUpdate(update))

	cmds := []tea.Cmd{next, a.loadChatsCmd()}
	if a.view == viewChat && a.chatID == update.ChatID {
		cmds = append(cmds, a.loadMessagesCmd(update.ChatID))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleSessionClosed(msg sessionClosedMsg) (tea.Model, tea.Cmd) {
	if msg.session != a.session {
		return a, nil
	}
	a.session = nil
	a.online = false
	if msg.err != nil {
		a.setError(fmt.Sprintf("push connection lost: %v", msg.err))
	} else {
		a.setInfo("push connection closed")
	}
	return a, nil
}

func (a *App) handleChatsLoaded(msg chatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError(fmt.Sprintf("load chats: %v", msg.err))
		return a, nil
	}
	a.chats = msg.chats
	if a.view == viewHome && len(a.chats) > 0 {
		a.view = viewChats
	}
	a.updateViewportContent()
	return a, nil
}

func (a *App) handleMessagesLoaded(msg messagesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.chatID != a.chatID {
		return a, nil
	}
	if msg.err != nil {
		// An emptied chat answers 404 until its next message.
		if apiErr, ok := asAPIError(msg.err); ok && apiErr.Status == http.StatusNotFound {
			a.messages = nil
			a.setInfo(apiErr.Message)
			a.updateViewportContent()
			return a, nil
		}
		a.setError(fmt.Sprintf("load chat %d: %v", msg.chatID, msg.err))
		return a, nil
	}
	a.messages = msg.messages
	a.updateViewportContent()
	return a, nil
}

func (a *App) handleAPIResult(msg apiResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.setError(fmt.Sprintf("%s failed: %v", msg.action, msg.err))
		return a, nil
	}

	switch msg.action {
	case "create":
		if msg.existing {
			a.setInfo(fmt.Sprintf("chat %d already exists; opened it", msg.chatID))
		} else {
			a.setInfo(fmt.Sprintf("chat %d created", msg.chatID))
		}
		a.openChat(msg.chatID)
		a.updateViewportContent()
		return a, tea.Batch(a.loadMessagesCmd(msg.chatID), a.loadChatsCmd())
	case "edit":
		a.setInfo("message updated")
	case "delete":
		a.setInfo("message deleted")
	default:
		a.setInfo("message sent")
	}

	if a.online {
		// The push for our own change refreshes the view.
		return a, nil
	}
	return a, a.loadMessagesCmd(msg.chatID)
}

func describeUpdate(update protocol.ChatUpdate) string {
	switch update.Type {
	case protocol.UpdateMessageUpdated:
		return fmt.Sprintf("message %d edited in chat %d", update.MessageID, update.ChatID)
	case protocol.UpdateMessageDeleted:
		return fmt.Sprintf("message %d deleted in chat %d", update.MessageID, update.ChatID)
	default:
		return fmt.Sprintf("new message in chat %d from user %d", update.ChatID, update.Sender)
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
