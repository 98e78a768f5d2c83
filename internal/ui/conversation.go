package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chanterm/internal/chat"
)

// FollowState says whether the pane tracks new messages or the user's scroll.
type FollowState int

const (
	// Following keeps the view pinned to the newest message.
	Following FollowState = iota
	// UserControlled suspends auto-follow until an explicit jump to bottom.
	UserControlled
)

// ProfileRequestMsg asks the app to open the profile of an author.
type ProfileRequestMsg struct {
	Author string
}

// ConversationKeyMap defines the key bindings for the conversation pane
type ConversationKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Profile  key.Binding
}

// DefaultConversationKeyMap returns the default key bindings. jumpKey is the
// configured jump-to-bottom key.
func DefaultConversationKeyMap(jumpKey string) ConversationKeyMap {
	return ConversationKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("gg/home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", jumpKey),
			key.WithHelp(jumpKey+"/end", "latest"),
		),
		Profile: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter/p", "profile"),
		),
	}
}

// ConversationModel renders the message history and owns the follow state.
type ConversationModel struct {
	viewport viewport.Model
	messages []chat.Message

	follow     FollowState
	pendingNew int
	selected   int

	user          string
	jumpThreshold int
	lineIndex     []int // first content line of each message

	width       int
	height      int
	focused     bool
	styles      *Styles
	keyMap      ConversationKeyMap
	lastKeyWasG bool // Track if last key was 'g' for gg combo
	now         func() time.Time
}

// NewConversationModel creates the conversation pane. user is the identity
// whose messages get the self accent, jumpThreshold the line distance past
// which the jump indicator appears.
func NewConversationModel(styles *Styles, user string, jumpThreshold int, keyMap ConversationKeyMap) ConversationModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false // wheel input drives the follow state instead

	return ConversationModel{
		viewport:      vp,
		follow:        Following,
		user:          user,
		jumpThreshold: jumpThreshold,
		styles:        styles,
		keyMap:        keyMap,
		now:           time.Now,
	}
}

// Init initializes the conversation model
func (m ConversationModel) Init() tea.Cmd {
	return nil
}

// Update handles input for the pane. Any manual scroll input drops the pane
// out of Following; only the jump-to-bottom action brings it back.
func (m ConversationModel) Update(msg tea.Msg) (ConversationModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle gg combo for going to top
		if msg.String() == "g" {
			if m.lastKeyWasG {
				m.lastKeyWasG = false
				m.scrollManually(func() {
					m.selected = 0
					m.viewport.SetYOffset(0)
				})
				return m, nil
			}
			m.lastKeyWasG = true
			return m, nil
		}
		m.lastKeyWasG = false

		switch {
		case key.Matches(msg, m.keyMap.Up):
			m.scrollManually(func() {
				if m.selected > 0 {
					m.selected--
				}
				m.scrollToSelected()
			})

		case key.Matches(msg, m.keyMap.Down):
			m.scrollManually(func() {
				if m.selected < len(m.messages)-1 {
					m.selected++
				}
				m.scrollToSelected()
			})

		case key.Matches(msg, m.keyMap.PageUp):
			m.scrollManually(func() {
				m.viewport.HalfViewUp()
				m.selected = max(0, m.selected-m.pageSize())
			})

		case key.Matches(msg, m.keyMap.PageDown):
			m.scrollManually(func() {
				m.viewport.HalfViewDown()
				m.selected = max(0, min(len(m.messages)-1, m.selected+m.pageSize()))
			})

		case key.Matches(msg, m.keyMap.Top):
			m.scrollManually(func() {
				m.selected = 0
				m.viewport.SetYOffset(0)
			})

		case key.Matches(msg, m.keyMap.Bottom):
			m.JumpToBottom()

		case key.Matches(msg, m.keyMap.Profile):
			if author, ok := m.selectedAuthor(); ok {
				return m, func() tea.Msg { return ProfileRequestMsg{Author: author} }
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollManually(func() { m.viewport.LineUp(3) })
		case tea.MouseButtonWheelDown:
			m.scrollManually(func() { m.viewport.LineDown(3) })
		}
	}

	return m, nil
}

// scrollManually runs a scroll mutation and unconditionally leaves Following,
// matching how a drag gesture behaves in touch chat clients.
func (m *ConversationModel) scrollManually(move func()) {
	m.follow = UserControlled
	move()
	m.refresh()
}

// JumpToBottom returns the pane to Following and pins the newest message.
func (m *ConversationModel) JumpToBottom() {
	m.follow = Following
	m.pendingNew = 0
	if len(m.messages) > 0 {
		m.selected = len(m.messages) - 1
	}
	m.refresh()
	m.viewport.GotoBottom()
}

// SetMessages replaces the rendered snapshot. While Following the view sticks
// to the bottom; otherwise new arrivals only grow the pending counter.
func (m *ConversationModel) SetMessages(msgs []chat.Message) {
	delta := len(msgs) - len(m.messages)
	m.messages = msgs

	if m.selected >= len(msgs) {
		m.selected = max(0, len(msgs)-1)
	}

	if m.follow == Following {
		if delta > 0 && len(msgs) > 0 {
			m.selected = len(msgs) - 1
		}
		m.refresh()
		if !m.viewport.AtBottom() {
			m.viewport.GotoBottom()
		}
		return
	}

	if delta > 0 {
		m.pendingNew += delta
	}
	m.refresh()
}

// Follow returns the current follow state.
func (m ConversationModel) Follow() FollowState {
	return m.follow
}

// PendingNew returns how many messages arrived while not Following.
func (m ConversationModel) PendingNew() int {
	return m.pendingNew
}

// AtBottom reports whether the newest message is in view.
func (m ConversationModel) AtBottom() bool {
	return m.viewport.AtBottom()
}

// JumpIndicatorVisible reports whether the jump-to-bottom affordance shows:
// either the view sits further above the bottom than the threshold, or
// messages arrived while scrolled away.
func (m ConversationModel) JumpIndicatorVisible() bool {
	if m.pendingNew > 0 {
		return true
	}
	return m.linesFromBottom() > m.jumpThreshold
}

// SetSize sets the pane dimensions
func (m *ConversationModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Panel border and padding eat two columns a side; one row is reserved
	// for the jump indicator.
	m.viewport.Width = max(0, width-4)
	m.viewport.Height = max(0, height-3)
	m.refresh()

	if m.follow == Following {
		m.viewport.GotoBottom()
	}
}

// SetFocused sets the focus state and re-renders so the cursor marker
// appears or clears with it.
func (m *ConversationModel) SetFocused(focused bool) {
	if m.focused == focused {
		return
	}
	m.focused = focused
	m.refresh()
}

// SelectedMessage returns the message under the cursor.
func (m ConversationModel) SelectedMessage() (chat.Message, bool) {
	if m.selected >= 0 && m.selected < len(m.messages) {
		return m.messages[m.selected], true
	}
	return chat.Message{}, false
}

// View renders the conversation pane
func (m ConversationModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.indicatorLine())

	style := m.styles.Panel
	if m.focused {
		style = m.styles.PanelActive
	}

	return style.Width(m.width - 2).Height(m.height - 2).Render(b.String())
}

// indicatorLine right-aligns the jump affordance under the history.
func (m ConversationModel) indicatorLine() string {
	w := m.viewport.Width
	if !m.JumpIndicatorVisible() || w <= 0 {
		return strings.Repeat(" ", max(0, w))
	}

	label := fmt.Sprintf("↓ latest · %s", m.keyMap.Bottom.Help().Key)
	if m.pendingNew > 0 {
		label = fmt.Sprintf("↓ %d new · %s", m.pendingNew, m.keyMap.Bottom.Help().Key)
	}

	pill := m.styles.JumpIndicator.Render(label)
	pad := max(0, w-lipgloss.Width(pill))
	return strings.Repeat(" ", pad) + pill
}

// refresh rebuilds the viewport content from the message snapshot.
func (m *ConversationModel) refresh() {
	if m.viewport.Width <= 0 {
		return
	}

	offset := m.viewport.YOffset

	var b strings.Builder
	m.lineIndex = m.lineIndex[:0]
	line := 0
	gi := 0
	now := m.now()

	for _, bucket := range chat.DayBuckets(m.messages) {
		b.WriteString(m.renderDivider(chat.DayLabel(bucket.Day, now)))
		b.WriteString("\n")
		line++

		for j := range bucket.Messages {
			msg := bucket.Messages[j]
			block := m.renderMessage(gi, msg, j == 0)
			m.lineIndex = append(m.lineIndex, line)
			b.WriteString(block)
			b.WriteString("\n")
			line += lipgloss.Height(block)
			gi++
		}
	}

	m.viewport.SetContent(strings.TrimSuffix(b.String(), "\n"))
	m.viewport.SetYOffset(offset)
}

// renderDivider draws a horizontal rule with the day label centered.
func (m ConversationModel) renderDivider(label string) string {
	w := m.viewport.Width
	text := " " + label + " "
	side := max(0, (w-lipgloss.Width(text))/2)

	rule := strings.Repeat("─", side) + text + strings.Repeat("─", max(0, w-side-lipgloss.Width(text)))
	return m.styles.DayDivider.Render(rule)
}

// renderMessage draws one message. First-by-author messages get an avatar and
// an author/timestamp header; the rest indent under the previous header. A
// bucket start always counts as first so nothing renders headerless under a
// day divider.
func (m ConversationModel) renderMessage(gi int, msg chat.Message, bucketStart bool) string {
	const gutter = 7 // marker + space + avatar(4) + space
	textWidth := max(1, m.viewport.Width-gutter)

	marker := " "
	if gi == m.selected && m.focused {
		marker = m.styles.Cursor.Render("▌")
	}

	indent := marker + " " + strings.Repeat(" ", 5)

	self := msg.Author == m.user
	var lines []string

	if bucketStart || chat.FirstByAuthor(m.messages, gi) {
		avatar := m.styles.AvatarPeer
		author := m.styles.AuthorPeer
		if self {
			avatar = m.styles.AvatarSelf
			author = m.styles.AuthorSelf
		}

		header := marker + " " +
			avatar.Render(" "+initials(msg.Author)+" ") + " " +
			author.Render(msg.Author) + " " +
			m.styles.MessageTime.Render(msg.Timestamp.Format("15:04"))
		lines = append(lines, header)
	}

	if msg.Content != "" {
		for _, l := range strings.Split(wrapText(msg.Content, textWidth), "\n") {
			lines = append(lines, indent+m.styles.MessageBody.Render(l))
		}
	}

	if msg.HasImage() {
		frame := m.styles.MessageImage.Render("🖼 " + Truncate(msg.Image, max(4, textWidth-6)))
		for _, l := range strings.Split(frame, "\n") {
			lines = append(lines, indent+l)
		}
	}

	return strings.Join(lines, "\n")
}

// scrollToSelected keeps the cursor line inside the viewport.
func (m *ConversationModel) scrollToSelected() {
	if m.selected < 0 || m.selected >= len(m.lineIndex) {
		return
	}

	target := m.lineIndex[m.selected]
	switch {
	case target < m.viewport.YOffset:
		m.viewport.SetYOffset(target)
	case target >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(target - m.viewport.Height + 1)
	}
}

// linesFromBottom measures how far above the newest content the view sits.
func (m ConversationModel) linesFromBottom() int {
	return max(0, m.viewport.TotalLineCount()-(m.viewport.YOffset+m.viewport.Height))
}

// pageSize estimates messages per half screen for paging selection moves.
func (m ConversationModel) pageSize() int {
	return max(1, m.viewport.Height/4)
}

// selectedAuthor returns the author under the cursor.
func (m ConversationModel) selectedAuthor() (string, bool) {
	if msg, ok := m.SelectedMessage(); ok {
		return msg.Author, true
	}
	return "", false
}

// initials derives a two-letter avatar from an author name.
func initials(author string) string {
	fields := strings.Fields(strings.TrimSpace(author))
	switch {
	case len(fields) >= 2:
		return firstRune(fields[0]) + firstRune(fields[1])
	case len(fields) == 1:
		r := []rune(fields[0])
		if len(r) >= 2 {
			return strings.ToLower(string(r[:2]))
		}
		return strings.ToLower(string(r)) + " "
	default:
		return "??"
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return strings.ToLower(string(r))
	}
	return "?"
}

// wrapText wraps text to the specified width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		lineLen := 0
		for j, word := range words {
			wordLen := lipgloss.Width(word)
			if j > 0 && lineLen+1+wordLen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if j > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wordLen
		}
	}

	return result.String()
}
