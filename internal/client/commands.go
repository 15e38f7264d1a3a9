package client

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type commandSpec struct {
	trigger     string
	usage       string
	description string
	run         func(a *App, args string) tea.Cmd
}

func defaultCommands(prefix rune) []commandSpec {
	p := string(prefix)
	return []commandSpec{
		{trigger: p + "connect", usage: p + "connect [addr]", description: "Open the push connection", run: (*App).cmdConnect},
		{trigger: p + "chats", usage: p + "chats", description: "List your chats", run: (*App).cmdChats},
		{trigger: p + "open", usage: p + "open <chatId>", description: "Open a chat and load its history", run: (*App).cmdOpen},
		{trigger: p + "new", usage: p + "new <userId> <message>", description: "Start a chat with a first message", run: (*App).cmdNew},
		{trigger: p + "edit", usage: p + "edit <messageId> <message>", description: "Edit one of your messages", run: (*App).cmdEdit},
		{trigger: p + "delete", usage: p + "delete <messageId>", description: "Delete one of your messages", run: (*App).cmdDelete},
		{trigger: p + "help", usage: p + "help", description: "Show available commands", run: (*App).cmdHelp},
		{trigger: p + "quit", usage: p + "quit", description: "Exit the client", run: (*App).cmdQuit},
	}
}

// runInput dispatches a submitted line to a command or posts it to the open chat.
func (a *App) runInput(value string) tea.Cmd {
	line := strings.TrimSpace(value)
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, string(a.cfg.CommandPrefix())) {
		return a.postToOpenChat(value)
	}

	name, args := splitCommand(line)
	for _, c := range a.commands {
		if strings.EqualFold(c.trigger, name) {
			return c.run(a, args)
		}
	}
	a.setError(fmt.Sprintf("unknown command %s", name))
	return nil
}

func (a *App) postToOpenChat(message string) tea.Cmd {
	if a.chatID == 0 {
		a.setError("open a chat first with " + string(a.cfg.CommandPrefix()) + "open <chatId>")
		return nil
	}
	chatID := a.chatID
	return a.apiCmd("post", chatID, func(ctx context.Context) error {
		_, err := a.api.PostMessage(ctx, chatID, message)
		return err
	})
}

func (a *App) cmdConnect(args string) tea.Cmd {
	if addr := strings.TrimSpace(args); addr != "" {
		a.pushAddr = addr
	}
	a.closeSession()
	a.setInfo("connecting to " + a.pushAddr)
	return a.connectCmd()
}

func (a *App) cmdChats(string) tea.Cmd {
	a.view = viewChats
	a.chatID = 0
	a.messages = nil
	return a.loadChatsCmd()
}

func (a *App) cmdOpen(args string) tea.Cmd {
	chatID, err := parseID(args)
	if err != nil {
		a.setError("usage: " + string(a.cfg.CommandPrefix()) + "open <chatId>")
		return nil
	}
	a.openChat(chatID)
	return a.loadMessagesCmd(chatID)
}

func (a *App) cmdNew(args string) tea.Cmd {
	idText, message := splitCommand(args)
	recipientID, err := parseID(idText)
	if err != nil || strings.TrimSpace(message) == "" {
		a.setError("usage: " + string(a.cfg.CommandPrefix()) + "new <userId> <message>")
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		chatID, _, err := a.api.CreateChat(ctx, recipientID, message)
		if apiErr, ok := asAPIError(err); ok && apiErr.Conflict() {
			return apiResultMsg{action: "create", chatID: apiErr.ChatID, existing: true}
		}
		return apiResultMsg{action: "create", chatID: chatID, err: err}
	}
}

func (a *App) cmdEdit(args string) tea.Cmd {
	idText, message := splitCommand(args)
	messageID, err := parseID(idText)
	if err != nil || strings.TrimSpace(message) == "" {
		a.setError("usage: " + string(a.cfg.CommandPrefix()) + "edit <messageId> <message>")
		return nil
	}
	if a.chatID == 0 {
		a.setError("open a chat before editing")
		return nil
	}
	chatID := a.chatID
	return a.apiCmd("edit", chatID, func(ctx context.Context) error {
		return a.api.UpdateMessage(ctx, chatID, messageID, message)
	})
}

func (a *App) cmdDelete(args string) tea.Cmd {
	messageID, err := parseID(args)
	if err != nil {
		a.setError("usage: " + string(a.cfg.CommandPrefix()) + "delete <messageId>")
		return nil
	}
	if a.chatID == 0 {
		a.setError("open a chat before deleting")
		return nil
	}
	chatID := a.chatID
	return a.apiCmd("delete", chatID, func(ctx context.Context) error {
		return a.api.DeleteMessage(ctx, chatID, messageID)
	})
}

func (a *App) cmdHelp(string) tea.Cmd {
	a.view = viewHelp
	return nil
}

func (a *App) cmdQuit(string) tea.Cmd {
	a.closeSession()
	return tea.Quit
}

func (a *App) openChat(chatID uint) {
	a.view = viewChat
	if a.chatID != chatID {
		a.messages = nil
	}
	a.chatID = chatID
}

// completeCommand extends the typed command to the longest unambiguous prefix.
func (a *App) completeCommand() {
	value := a.input.Value()
	if !strings.HasPrefix(value, string(a.cfg.CommandPrefix())) || strings.ContainsAny(value, " \t") {
		return
	}

	var matches []string
	for _, c := range a.commands {
		if strings.HasPrefix(c.trigger, strings.ToLower(value)) {
			matches = append(matches, c.trigger)
		}
	}
	if len(matches) == 0 {
		return
	}
	sort.Strings(matches)

	completed := longestCommonPrefix(matches)
	if len(matches) == 1 {
		completed += " "
	}
	a.input.SetValue(completed)
	a.input.CursorEnd()
	a.updateHelp()
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return uint(id), nil
}

func longestCommonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
