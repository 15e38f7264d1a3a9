package client

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenggwsx/slashdm/internal/config"
)

// App implements the bubbletea tea.Model interface for the terminal client.
type App struct {
	cfg      config.ClientConfig
	api      *APIClient
	session  *Session
	input    textinput.Model
	viewport viewport.Model
	helper   help.Model
	styles   styleSet
	keys     keyMap
	commands []commandSpec

	width      int
	height     int
	showHelp   bool
	helpView   string
	helpHeight int

	view     primaryView
	pushAddr string
	userID   uint
	online   bool
	chats    []ChatSummary
	chatID   uint
	messages []Message
	logLine  logLine
}

type primaryView int

const (
	viewHome primaryView = iota
	viewChats
	viewChat
	viewHelp
)

func (v primaryView) String() string {
	switch v {
	case viewChats:
		return "chats"
	case viewChat:
		return "chat"
	case viewHelp:
		return "help"
	default:
		return "home"
	}
}

type logLevel int

const (
	logLevelInfo logLevel = iota
	logLevelError
)

type logLine struct {
	level logLevel
	label string
	body  string
}

type keyMap struct {
	submit   key.Binding
	complete key.Binding
	reset    key.Binding
	pageUp   key.Binding
	pageDown key.Binding
	quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		submit:   key.NewBinding(key.WithKeys("enter")),
		complete: key.NewBinding(key.WithKeys("tab")),
		reset:    key.NewBinding(key.WithKeys("esc")),
		pageUp:   key.NewBinding(key.WithKeys("pgup")),
		pageDown: key.NewBinding(key.WithKeys("pgdown")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// NewApp returns a Bubble Tea model pre-populated with defaults.
func NewApp(cfg config.ClientConfig) *App {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Type a message or " + string(cfg.CommandPrefix()) + "help"
	input.CharLimit = 4096
	input.Focus()

	app := &App{
		cfg:      cfg,
		api:      NewAPIClient(cfg),
		input:    input,
		viewport: viewport.New(0, 0),
		helper:   help.New(),
		styles:   buildStyles(),
		keys:     defaultKeyMap(),
		commands: defaultCommands(cfg.CommandPrefix()),
		view:     viewHome,
		pushAddr: cfg.PushAddr,
		logLine:  logLine{label: "INFO", body: "Welcome to SlashDM."},
	}
	app.updateViewportContent()
	return app
}

// Init connects and loads the chat list when a token is configured.
func (a *App) Init() tea.Cmd {
	if a.cfg.Token == "" {
		a.setError("no token configured; set SLASHDM_TOKEN and restart")
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, a.connectCmd(), a.loadChatsCmd())
}

// Update handles user input and internal events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.updateInputWidth()
		a.updateViewportSize()
		a.updateViewportContent()
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case connectResultMsg:
		return a.handleConnectResult(m)
	case sessionEnvelopeMsg:
		return a.handleEnvelope(m)
	case sessionClosedMsg:
		return a.handleSessionClosed(m)
	case chatsLoadedMsg:
		return a.handleChatsLoaded(m)
	case messagesLoadedMsg:
		return a.handleMessagesLoaded(m)
	case apiResultMsg:
		return a.handleAPIResult(m)
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.quit):
		a.closeSession()
		return a, tea.Quit
	case key.Matches(msg, a.keys.submit):
		return a.submit()
	case key.Matches(msg, a.keys.complete):
		a.completeCommand()
		return a, nil
	case key.Matches(msg, a.keys.reset):
		a.input.Reset()
		a.updateHelp()
		return a, nil
	case key.Matches(msg, a.keys.pageUp):
		a.viewport.LineUp(a.viewport.Height)
		return a, nil
	case key.Matches(msg, a.keys.pageDown):
		a.viewport.LineDown(a.viewport.Height)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.updateHelp()
	return a, cmd
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	value := a.input.Value()
	a.input.Reset()
	a.updateHelp()

	cmd := a.runInput(value)
	a.updateViewportContent()
	return a, cmd
}

func (a *App) closeSession() {
	if a.session == nil {
		return
	}
	_ = a.session.Close()
	a.session = nil
	a.online = false
}

func (a *App) setInfo(body string) {
	a.logLine = logLine{level: logLevelInfo, label: "INFO", body: body}
}

func (a *App) setError(body string) {
	a.logLine = logLine{level: logLevelError, label: "ERROR", body: body}
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	if a.cfg.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}
