package client

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/slashdm/internal/config"
	"github.com/fenggwsx/slashdm/internal/protocol"
)

func newTestApp() *App {
	return NewApp(config.ClientConfig{
		APIURL:   "http://127.0.0.1:1",
		PushAddr: "127.0.0.1:1",
		Prefix:   "/",
	})
}

func TestApp_RunInput(t *testing.T) {
	t.Run("should refuse free text without an open chat", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		cmd := app.runInput("hello")

		req.Nil(cmd)
		req.Equal(logLevelError, app.logLine.level)
	})

	t.Run("should post free text to the open chat", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.openChat(7)

		req.NotNil(app.runInput("hello"))
	})

	t.Run("should switch to the help view", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		app.runInput("/help")

		req.Equal(viewHelp, app.view)
		app.updateViewportContent()
		req.Contains(app.renderHelpView(), "/new <userId> <message>")
	})

	t.Run("should report unknown commands", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		req.Nil(app.runInput("/bogus"))
		req.Equal(logLevelError, app.logLine.level)
		req.Contains(app.logLine.body, "/bogus")
	})

	t.Run("should validate command arguments", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		for _, line := range []string{"/open abc", "/new 2", "/new x hello", "/edit 3", "/delete 0"} {
			app.logLine = logLine{}
			req.Nil(app.runInput(line), line)
			req.Equal(logLevelError, app.logLine.level, line)
		}
	})

	t.Run("should require an open chat to edit", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		req.Nil(app.runInput("/edit 3 fixed"))
		req.Contains(app.logLine.body, "open a chat")
	})

	t.Run("should open a chat", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		cmd := app.runInput("/open 7")

		req.NotNil(cmd)
		req.Equal(viewChat, app.view)
		req.Equal(uint(7), app.chatID)
	})
}

func TestApp_CompleteCommand(t *testing.T) {
	t.Run("should extend to the shared prefix", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.input.SetValue("/c")

		app.completeCommand()

		req.Equal("/c", app.input.Value())
		req.True(app.showHelp)
	})

	t.Run("should complete a unique command", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.input.SetValue("/ch")

		app.completeCommand()

		req.Equal("/chats ", app.input.Value())
	})

	t.Run("should leave free text alone", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.input.SetValue("hello")

		app.completeCommand()

		req.Equal("hello", app.input.Value())
	})
}

func TestApp_Handlers(t *testing.T) {
	t.Run("should open the existing chat after a conflict", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()

		_, cmd := app.handleAPIResult(apiResultMsg{action: "create", chatID: 7, existing: true})

		req.NotNil(cmd)
		req.Equal(viewChat, app.view)
		req.Equal(uint(7), app.chatID)
		req.Contains(app.logLine.body, "already exists")
	})

	t.Run("should treat a 404 history as an empty chat", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.openChat(7)
		app.messages = []Message{{MessageID: 1, Message: "old"}}

		app.handleMessagesLoaded(messagesLoadedMsg{
			chatID: 7,
			err:    &APIError{Status: http.StatusNotFound, Message: "no messages in chat"},
		})

		req.Empty(app.messages)
		req.Equal(logLevelInfo, app.logLine.level)
	})

	t.Run("should ignore history for a chat no longer open", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.openChat(8)

		app.handleMessagesLoaded(messagesLoadedMsg{chatID: 7, messages: []Message{{MessageID: 1}}})

		req.Empty(app.messages)
	})

	t.Run("should refresh on a chat update from the current session", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		session := NewSession("127.0.0.1:1", "token")
		app.session = session
		app.openChat(7)

		_, cmd := app.handleEnvelope(sessionEnvelopeMsg{
			session: session,
			envelope: protocol.Envelope{
				Type:    protocol.MessageTypeChatUpdate,
				Payload: protocol.ChatUpdate{Type: protocol.UpdateMessageDeleted, ChatID: 7, MessageID: 3},
			},
		})

		req.NotNil(cmd)
		req.Equal("message 3 deleted in chat 7", app.logLine.body)
	})

	t.Run("should drop events from a replaced session", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		app.session = NewSession("127.0.0.1:1", "token")

		_, cmd := app.handleEnvelope(sessionEnvelopeMsg{session: NewSession("127.0.0.1:1", "token")})

		req.Nil(cmd)
	})

	t.Run("should go offline when the session closes", func(t *testing.T) {
		req := require.New(t)
		app := newTestApp()
		session := NewSession("127.0.0.1:1", "token")
		app.session = session
		app.online = true

		app.handleSessionClosed(sessionClosedMsg{session: session})

		req.False(app.online)
		req.Nil(app.session)
	})
}

func TestApp_RenderChats(t *testing.T) {
	req := require.New(t)
	app := newTestApp()
	app.userID = 1
	app.chats = []ChatSummary{
		{ChatID: 7, Initiator: 1, Recipient: 2, LastMessage: &LastMessage{Message: "Hi there", Sender: 2}},
		{ChatID: 8, Initiator: 3, Recipient: 1},
	}

	out := app.renderChatTable()

	req.Contains(out, "Hi there")
	lines := strings.Split(out, "\n")
	req.GreaterOrEqual(len(lines), 3)
	req.True(strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "8"))
}

func TestHelpers(t *testing.T) {
	t.Run("should split a command from its arguments", func(t *testing.T) {
		req := require.New(t)

		name, args := splitCommand("/new 2   hello there ")

		req.Equal("/new", name)
		req.Equal("2   hello there", args)
	})

	t.Run("should compute the longest common prefix", func(t *testing.T) {
		req := require.New(t)

		req.Equal("/c", longestCommonPrefix([]string{"/chats", "/connect"}))
		req.Equal("/open", longestCommonPrefix([]string{"/open"}))
		req.Equal("", longestCommonPrefix(nil))
	})

	t.Run("should reject non positive ids", func(t *testing.T) {
		req := require.New(t)

		_, err := parseID("0")
		req.Error(err)
		id, err := parseID(" 12 ")
		req.NoError(err)
		req.Equal(uint(12), id)
	})

	t.Run("should wrap on word boundaries", func(t *testing.T) {
		req := require.New(t)

		lines := wrapLines([]string{"alpha beta gamma delta"}, 11)

		req.Equal([]string{"alpha beta", "gamma delta"}, lines)
	})
}
