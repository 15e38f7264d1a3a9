package client

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

const timeLayout = "2006-01-02 15:04"

var homeContent = buildHomeContent()

type styleSet struct {
	title         lipgloss.Style
	view          lipgloss.Style
	statusOnline  lipgloss.Style
	statusOffline lipgloss.Style
	label         lipgloss.Style
	value         lipgloss.Style
	logLabel      lipgloss.Style
	logBody       lipgloss.Style
	logLabelError lipgloss.Style
	logBodyError  lipgloss.Style
	help          lipgloss.Style
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.showHelp && a.helpView != "" {
		b.WriteString(a.styles.help.Render(a.helpView))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.logLineView())
	b.WriteString("\n")
	b.WriteString(a.statusLine())

	return b.String()
}

func (a *App) updateViewportContent() {
	width := a.viewport.Width
	if width <= 0 {
		width = a.width
	}

	switch a.view {
	case viewChats:
		if len(a.chats) == 0 {
			a.viewport.SetContent("No chats yet. Start one with " + string(a.cfg.CommandPrefix()) + "new <userId> <message>.")
			return
		}
		a.viewport.SetContent(a.renderChatTable())
		a.viewport.GotoTop()
	case viewChat:
		if len(a.messages) == 0 {
			a.viewport.SetContent(fmt.Sprintf("Chat %d has no messages. Type and press Enter to send.", a.chatID))
			return
		}
		a.viewport.SetContent(strings.Join(wrapLines(a.renderMessages(), width), "\n"))
		a.viewport.GotoBottom()
	case viewHelp:
		a.viewport.SetContent(a.renderHelpView())
		a.viewport.GotoTop()
	default:
		a.viewport.SetContent(homeContent)
	}
}

func (a *App) renderChatTable() string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Chat", "With", "Updated", "Last message"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)

	rows := make([][]string, 0, len(a.chats))
	for _, c := range a.chats {
		with := fmt.Sprintf("%d, %d", c.Initiator, c.Recipient)
		if a.userID != 0 {
			with = strconv.FormatUint(uint64(c.Peer(a.userID)), 10)
		}
		preview := "-"
		if c.LastMessage != nil {
			preview = truncate(c.LastMessage.Message, 40)
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(c.ChatID), 10),
			with,
			c.UpdatedAt.Local().Format(timeLayout),
			preview,
		})
	}
	table.AppendBulk(rows)
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderMessages() []string {
	lines := make([]string, 0, len(a.messages))
	for _, m := range a.messages {
		who := fmt.Sprintf("user %d", m.Sender)
		if a.userID != 0 && m.Sender == a.userID {
			who = "you"
		}
		header := fmt.Sprintf("[%s #%d %s]", m.CreatedAt.Local().Format(timeLayout), m.MessageID, who)
		lines = append(lines, header+" "+m.Message)
	}
	return lines
}

func (a *App) renderHelpView() string {
	var b strings.Builder
	b.WriteString("SlashDM Commands\n\n")
	for _, c := range a.commands {
		b.WriteString(fmt.Sprintf("%-28s %s\n", c.usage, c.description))
	}
	b.WriteString("\nText without the command prefix is sent to the open chat.")
	return b.String()
}

func (a *App) updateViewportSize() {
	if a.height == 0 {
		return
	}
	const fixed = 3
	height := a.height - fixed - a.helpHeight
	if height < 3 {
		height = 3
	}
	a.viewport.Height = height
	a.viewport.Width = a.width
}

func (a *App) updateInputWidth() {
	width := a.width
	if width <= 0 {
		width = 60
	}
	usable := width - lipgloss.Width(a.input.Prompt) - 1
	if usable < 10 {
		usable = 10
	}
	a.input.Width = usable
}

func (a *App) updateHelp() {
	value := a.input.Value()
	if value == "" || !strings.HasPrefix(value, string(a.cfg.CommandPrefix())) {
		a.clearHelp()
		return
	}

	token := value
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		token = value[:idx]
	}

	bindings := a.matchingBindings(token)
	if len(bindings) == 0 {
		a.clearHelp()
		return
	}

	a.showHelp = true
	a.helper.Width = a.width
	view := strings.TrimRight(a.helper.View(dynamicKeyMap{keys: bindings}), "\n")
	a.helpView = view
	a.helpHeight = countLines(view)
	a.updateViewportSize()
}

func (a *App) clearHelp() {
	a.showHelp = false
	a.helpView = ""
	a.helpHeight = 0
	a.updateViewportSize()
}

func (a *App) matchingBindings(prefix string) []key.Binding {
	prefix = strings.ToLower(prefix)
	var bindings []key.Binding
	for _, c := range a.commands {
		if strings.HasPrefix(c.trigger, prefix) {
			bindings = append(bindings, key.NewBinding(
				key.WithKeys(c.usage),
				key.WithHelp(c.usage, c.description),
			))
		}
	}
	return bindings
}

func (a *App) statusLine() string {
	status := "OFFLINE"
	statusStyle := a.styles.statusOffline
	if a.online {
		status = "ONLINE"
		statusStyle = a.styles.statusOnline
	}

	user := "-"
	if a.userID != 0 {
		user = strconv.FormatUint(uint64(a.userID), 10)
	}
	chat := "-"
	if a.chatID != 0 {
		chat = strconv.FormatUint(uint64(a.chatID), 10)
	}

	parts := []string{
		a.styles.title.Render("SlashDM"),
		a.styles.view.Render(strings.ToUpper(a.view.String())),
		statusStyle.Render(status),
		a.styles.label.Render("Push") + ": " + a.styles.value.Render(a.pushAddr),
		a.styles.label.Render("User") + ": " + a.styles.value.Render(user),
		a.styles.label.Render("Chat") + ": " + a.styles.value.Render(chat),
	}
	return strings.Join(parts, " | ")
}

func (a *App) logLineView() string {
	labelStyle := a.styles.logLabel
	bodyStyle := a.styles.logBody
	if a.logLine.level == logLevelError {
		labelStyle = a.styles.logLabelError
		bodyStyle = a.styles.logBodyError
	}
	return labelStyle.Render(a.logLine.label) + " " + bodyStyle.Render(a.logLine.body)
}

func buildStyles() styleSet {
	base := lipgloss.NewStyle()
	return styleSet{
		title:         base.Foreground(lipgloss.Color("13")).Bold(true),
		view:          base.Foreground(lipgloss.Color("14")).Bold(true),
		statusOnline:  base.Foreground(lipgloss.Color("10")).Bold(true),
		statusOffline: base.Foreground(lipgloss.Color("9")).Bold(true),
		label:         base.Foreground(lipgloss.Color("8")),
		value:         base.Foreground(lipgloss.Color("15")),
		logLabel:      base.Foreground(lipgloss.Color("11")).Bold(true),
		logBody:       base.Foreground(lipgloss.Color("7")),
		logLabelError: base.Foreground(lipgloss.Color("9")).Bold(true),
		logBodyError:  base.Foreground(lipgloss.Color("9")),
		help:          base.Foreground(lipgloss.Color("12")),
	}
}

func buildHomeContent() string {
	fig := figure.NewColorFigure("SLASH DM", "3-d", "green", true)
	art := strings.TrimRight(fig.String(), "\n")
	info := []string{
		"Use /connect to open the push connection.",
		"Use /chats to list your conversations.",
		"Use /new <userId> <message> to start a chat.",
		"Use /open <chatId> to read a chat, then type to reply.",
		"Use /help to browse all commands.",
	}
	return art + "\n\n" + strings.Join(info, "\n")
}

func truncate(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, "...")
}

func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	const minWidth = 10
	if width < minWidth {
		width = minWidth
	}

	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		segment := line
		if segment == "" {
			wrapped = append(wrapped, "")
			continue
		}
		for len(segment) > 0 {
			if runewidth.StringWidth(segment) <= width {
				wrapped = append(wrapped, segment)
				break
			}
			cut := wrapCutIndex(segment, width)
			part := strings.TrimRight(segment[:cut], " ")
			if part == "" {
				part = segment[:cut]
			}
			wrapped = append(wrapped, part)
			segment = strings.TrimLeft(segment[cut:], " ")
		}
	}
	return wrapped
}

func wrapCutIndex(s string, limit int) int {
	var width int
	lastSpace := -1
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > limit {
			if lastSpace >= 0 {
				return lastSpace + 1
			}
			if width == 0 {
				return i + len(string(r))
			}
			return i
		}
		width += rw
		if unicode.IsSpace(r) {
			lastSpace = i
		}
	}
	return len(s)
}

type dynamicKeyMap struct {
	keys []key.Binding
}

func (d dynamicKeyMap) ShortHelp() []key.Binding {
	return d.keys
}

func (d dynamicKeyMap) FullHelp() [][]key.Binding {
	if len(d.keys) == 0 {
		return [][]key.Binding{}
	}
	return [][]key.Binding{d.keys}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
