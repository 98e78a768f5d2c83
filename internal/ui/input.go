package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// InputMode represents the current mode of the input (like vim)
type InputMode int

const (
	ModeInsert InputMode = iota
	ModeNormal
)

// demoAttachment is the canned image reference toggled by the attach key.
const demoAttachment = "gopher.png"

// InputKeyMap defines the key bindings for the input component
type InputKeyMap struct {
	Send   key.Binding
	Attach key.Binding
}

// DefaultInputKeyMap returns the default key bindings
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "attach"),
		),
	}
}

// SendMessageMsg is sent when the user submits the input box
type SendMessageMsg struct {
	Content string
	Image   string
}

// OpenEditorMsg is sent when the user wants to compose in the external editor
type OpenEditorMsg struct {
	InitialContent string
}

// PendingAction represents a vim command waiting for additional input
type PendingAction int

const (
	PendingNone PendingAction = iota
	PendingFindForward  // f - waiting for char to find forward
	PendingFindBackward // F - waiting for char to find backward
	PendingChange       // c - waiting for motion (w, e, $, etc.)
	PendingDelete       // d - waiting for motion (w, e, $, etc.)
)

// InputModel represents the message input component
type InputModel struct {
	textInput     textinput.Model
	draftContent  string // Stores full multiline content from editor
	pendingImage  string // Attachment reference for the next send
	width         int
	focused       bool
	styles        *Styles
	keyMap        InputKeyMap
	mode          InputMode     // Current vim mode (insert/normal)
	pendingAction PendingAction // Pending vim command waiting for char
	lastFindChar  rune          // Last character used with f/F
	lastFindDir   int           // 1 = forward (f), -1 = backward (F)
}

// NewInputModel creates a new input model
func NewInputModel(styles *Styles) InputModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message... (Esc for normal mode)"
	ti.CharLimit = 5000
	ti.Width = 50

	return InputModel{
		textInput: ti,
		styles:    styles,
		keyMap:    DefaultInputKeyMap(),
		mode:      ModeInsert, // Start in insert mode
	}
}

// Init initializes the input model
func (m InputModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the input component
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.focused {
		if m.mode == ModeNormal {
			return m.handleNormalMode(msg)
		}
		return m.handleInsertMode(msg)
	}

	// Update the text input only in insert mode
	if m.focused && m.mode == ModeInsert {
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleInsertMode handles keys in insert mode
func (m InputModel) handleInsertMode(msg tea.KeyMsg) (InputModel, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		// Switch to normal mode
		m.mode = ModeNormal
		m.textInput.Blur()
		return m, nil

	case key.Matches(msg, m.keyMap.Send):
		return m.submit()

	case key.Matches(msg, m.keyMap.Attach):
		m = m.toggleAttachment()
		return m, nil
	}

	// Let textinput handle other keys
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit emits SendMessageMsg for the current draft. Blank drafts without an
// attachment are a no-op.
func (m InputModel) submit() (InputModel, tea.Cmd) {
	content := strings.TrimSpace(m.draftContent)
	if content == "" {
		content = strings.TrimSpace(m.textInput.Value())
	}
	image := m.pendingImage

	if content == "" && image == "" {
		return m, nil
	}

	m.textInput.Reset()
	m.draftContent = ""
	m.pendingImage = ""

	log.Debug().Int("len", len(content)).Bool("image", image != "").Msg("input submitted")
	return m, func() tea.Msg {
		return SendMessageMsg{Content: content, Image: image}
	}
}

// toggleAttachment arms or disarms the canned image for the next send.
func (m InputModel) toggleAttachment() InputModel {
	if m.pendingImage == "" {
		m.pendingImage = demoAttachment
	} else {
		m.pendingImage = ""
	}
	return m
}

// handleNormalMode handles keys in normal mode (vim-like)
func (m InputModel) handleNormalMode(msg tea.KeyMsg) (InputModel, tea.Cmd) {
	// Handle pending actions first (f/F waiting for character)
	if m.pendingAction != PendingNone {
		return m.handlePendingAction(msg)
	}

	switch msg.String() {
	case "i":
		// Enter insert mode at cursor
		m.mode = ModeInsert
		m.textInput.Focus()
		return m, nil

	case "a":
		// Enter insert mode after cursor
		m.mode = ModeInsert
		m.textInput.Focus()
		m.textInput.SetCursor(m.textInput.Position() + 1)
		return m, nil

	case "A":
		// Enter insert mode at end of line
		m.mode = ModeInsert
		m.textInput.Focus()
		m.textInput.SetCursor(len([]rune(m.textInput.Value())))
		return m, nil

	case "I":
		// Enter insert mode at beginning of line
		m.mode = ModeInsert
		m.textInput.Focus()
		m.textInput.SetCursor(0)
		return m, nil

	case "v":
		// Open external editor (like vim's v in readline)
		currentContent := m.draftContent
		if currentContent == "" {
			currentContent = m.textInput.Value()
		}
		return m, func() tea.Msg {
			return OpenEditorMsg{InitialContent: currentContent}
		}

	case "d":
		// d - wait for motion (dw, de, d$, etc.) or dd to clear line
		m.pendingAction = PendingDelete
		return m, nil

	case "D":
		// Delete from cursor to end of line
		m = m.deleteToEndOfLine()
		return m, nil

	case "c":
		// c - wait for motion (cw, ce, c$, etc.)
		m.pendingAction = PendingChange
		return m, nil

	case "C":
		// Change from cursor to end of line (delete to end + insert mode)
		m = m.deleteToEndOfLine()
		m.mode = ModeInsert
		m.textInput.Focus()
		return m, nil

	case "f":
		// Find character forward - wait for next char
		m.pendingAction = PendingFindForward
		return m, nil

	case "F":
		// Find character backward - wait for next char
		m.pendingAction = PendingFindBackward
		return m, nil

	case ";":
		// Repeat last find in same direction
		if m.lastFindChar != 0 {
			m = m.repeatFind(m.lastFindDir)
		}
		return m, nil

	case ",":
		// Repeat last find in opposite direction
		if m.lastFindChar != 0 {
			m = m.repeatFind(-m.lastFindDir)
		}
		return m, nil

	case "0":
		// Move to beginning of line
		m.textInput.SetCursor(0)
		return m, nil

	case "$":
		// Move to end of line
		m.textInput.SetCursor(len([]rune(m.textInput.Value())))
		return m, nil

	case "h":
		// Move left
		if pos := m.textInput.Position(); pos > 0 {
			m.textInput.SetCursor(pos - 1)
		}
		return m, nil

	case "l":
		// Move right
		if pos := m.textInput.Position(); pos < len([]rune(m.textInput.Value())) {
			m.textInput.SetCursor(pos + 1)
		}
		return m, nil

	case "w":
		// Move to next word
		m = m.moveToNextWord()
		return m, nil

	case "b":
		// Move to previous word
		m = m.moveToPrevWord()
		return m, nil

	case "e":
		// Move to end of word
		m = m.moveToEndOfWord()
		return m, nil

	case "x":
		// Delete character under cursor
		m = m.deleteCharAtCursor()
		return m, nil

	case "enter":
		// Send message (also works in normal mode)
		return m.submit()

	case "esc":
		// Cancel any pending action
		m.pendingAction = PendingNone
		return m, nil
	}

	return m, nil
}

// handlePendingAction handles the second character for f/F/c/d commands
func (m InputModel) handlePendingAction(msg tea.KeyMsg) (InputModel, tea.Cmd) {
	char := msg.String()

	// Cancel on escape
	if char == "esc" {
		m.pendingAction = PendingNone
		return m, nil
	}

	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	switch m.pendingAction {
	case PendingFindForward:
		m.pendingAction = PendingNone
		target, ok := singleRune(char)
		if !ok {
			return m, nil
		}
		m.lastFindChar = target
		m.lastFindDir = 1 // forward
		for i := pos + 1; i < len(val); i++ {
			if val[i] == target {
				m.textInput.SetCursor(i)
				break
			}
		}

	case PendingFindBackward:
		m.pendingAction = PendingNone
		target, ok := singleRune(char)
		if !ok {
			return m, nil
		}
		m.lastFindChar = target
		m.lastFindDir = -1 // backward
		for i := pos - 1; i >= 0; i-- {
			if val[i] == target {
				m.textInput.SetCursor(i)
				break
			}
		}

	case PendingChange:
		// Handle change motions: cw, ce, c$, cc, c0
		m.pendingAction = PendingNone
		switch char {
		case "w", "e":
			m = m.deleteToEndOfWord()
		case "$":
			m = m.deleteToEndOfLine()
		case "c":
			m.textInput.Reset()
			m.draftContent = ""
		case "0":
			m = m.deleteToBeginningOfLine()
		default:
			return m, nil
		}
		m.mode = ModeInsert
		m.textInput.Focus()
		return m, nil

	case PendingDelete:
		// Handle delete motions: dw, de, d$, dd, d0
		m.pendingAction = PendingNone
		switch char {
		case "w", "e":
			m = m.deleteToEndOfWord()
		case "$":
			m = m.deleteToEndOfLine()
		case "d":
			m.textInput.Reset()
			m.draftContent = ""
		case "0":
			m = m.deleteToBeginningOfLine()
		}
		return m, nil
	}

	m.pendingAction = PendingNone
	return m, nil
}

// singleRune extracts the rune from a one-character key string.
func singleRune(s string) (rune, bool) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}

// moveToNextWord moves cursor to the start of the next word
func (m InputModel) moveToNextWord() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	// Skip current word
	for pos < len(val) && val[pos] != ' ' {
		pos++
	}
	// Skip spaces
	for pos < len(val) && val[pos] == ' ' {
		pos++
	}
	m.textInput.SetCursor(pos)
	return m
}

// moveToPrevWord moves cursor to the start of the previous word
func (m InputModel) moveToPrevWord() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	// Skip spaces before cursor
	for pos > 0 && pos <= len(val) && val[pos-1] == ' ' {
		pos--
	}
	// Skip to start of word
	for pos > 0 && pos <= len(val) && val[pos-1] != ' ' {
		pos--
	}
	m.textInput.SetCursor(pos)
	return m
}

// deleteCharAtCursor deletes the character at the cursor position
func (m InputModel) deleteCharAtCursor() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	if pos < len(val) {
		m.textInput.SetValue(string(val[:pos]) + string(val[pos+1:]))
		m.textInput.SetCursor(pos)
	}
	return m
}

// deleteToEndOfLine deletes from cursor to end of line (D command)
func (m InputModel) deleteToEndOfLine() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	if pos < len(val) {
		m.textInput.SetValue(string(val[:pos]))
		m.textInput.SetCursor(pos)
	}
	return m
}

// deleteToBeginningOfLine deletes from cursor to beginning of line
func (m InputModel) deleteToBeginningOfLine() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	if pos > 0 && pos <= len(val) {
		m.textInput.SetValue(string(val[pos:]))
		m.textInput.SetCursor(0)
	}
	return m
}

// repeatFind repeats the last f/F find in the given direction (1=forward, -1=backward)
func (m InputModel) repeatFind(dir int) InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	if dir > 0 {
		for i := pos + 1; i < len(val); i++ {
			if val[i] == m.lastFindChar {
				m.textInput.SetCursor(i)
				break
			}
		}
	} else {
		for i := pos - 1; i >= 0 && i < len(val); i-- {
			if val[i] == m.lastFindChar {
				m.textInput.SetCursor(i)
				break
			}
		}
	}
	return m
}

// deleteToEndOfWord deletes from cursor to end of current word
func (m InputModel) deleteToEndOfWord() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()
	endPos := pos

	// Skip current word characters
	for endPos < len(val) && val[endPos] != ' ' {
		endPos++
	}
	// Also skip trailing space
	for endPos < len(val) && val[endPos] == ' ' {
		endPos++
	}

	if endPos > pos {
		m.textInput.SetValue(string(val[:pos]) + string(val[endPos:]))
		m.textInput.SetCursor(pos)
	}
	return m
}

// moveToEndOfWord moves cursor to the end of the current/next word
func (m InputModel) moveToEndOfWord() InputModel {
	val := []rune(m.textInput.Value())
	pos := m.textInput.Position()

	// Skip current position
	if pos < len(val) {
		pos++
	}

	// Skip spaces
	for pos < len(val) && val[pos] == ' ' {
		pos++
	}

	// Move to end of word
	for pos < len(val) && val[pos] != ' ' {
		pos++
	}

	// Position at last char of word, not after it
	if pos > 0 && (pos >= len(val) || val[pos] == ' ') {
		pos--
	}

	m.textInput.SetCursor(pos)
	return m
}

// View renders the input component
func (m InputModel) View() string {
	style := m.styles.Input
	if m.focused {
		if m.mode == ModeNormal {
			style = m.styles.InputFocused
		} else {
			// Cyan border for insert mode
			style = m.styles.InputFocused.BorderForeground(CyanColor)
		}
	}

	m.textInput.PromptStyle = m.styles.InputPrompt
	m.textInput.TextStyle = m.styles.MessageBody
	m.textInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Mode indicator and placeholder
	var modeIndicator string
	if m.mode == ModeNormal {
		modeIndicator = lipgloss.NewStyle().Foreground(TextWarningColor).Bold(true).Render("[N] ")
		m.textInput.Placeholder = "'i' for insert mode"
	} else {
		modeIndicator = lipgloss.NewStyle().Foreground(CyanColor).Bold(true).Render("[I] ")
		m.textInput.Placeholder = "Type a message... (Esc for normal mode)"
	}

	// Attachment indicator sits right-aligned; make room for it before the
	// text input pads its placeholder to full width.
	rightIndicator := ""
	if m.pendingImage != "" {
		rightIndicator = lipgloss.NewStyle().Foreground(TextMutedColor).Render("📎 " + m.pendingImage)
		m.textInput.Width = max(10, m.width-12-lipgloss.Width(rightIndicator))
	}

	inputView := m.textInput.View()

	contentLen := lipgloss.Width(modeIndicator) + lipgloss.Width(inputView) + lipgloss.Width(rightIndicator)
	spacing := ""
	if rightIndicator != "" && contentLen < m.width-4 {
		spacing = strings.Repeat(" ", m.width-4-contentLen)
	}

	fullView := modeIndicator + inputView + spacing + rightIndicator

	return style.Width(m.width - 2).Render(fullView)
}

// SetWidth sets the input width
func (m *InputModel) SetWidth(width int) {
	m.width = width
	m.textInput.Width = width - 10 // Account for padding, borders, and mode indicator
}

// SetFocused sets the focus state
func (m *InputModel) SetFocused(focused bool) {
	m.focused = focused
	if focused {
		// Start in insert mode when focused
		m.mode = ModeInsert
		m.textInput.Focus()
	} else {
		m.textInput.Blur()
	}
}

// Value returns the current input value
func (m InputModel) Value() string {
	return m.textInput.Value()
}

// PendingImage returns the attachment armed for the next send.
func (m InputModel) PendingImage() string {
	return m.pendingImage
}

// SetValue sets the input value. Multiline content is kept as a draft and the
// box shows a one-line preview; single-line content stays editable in place.
func (m *InputModel) SetValue(value string) {
	if strings.Contains(value, "\n") {
		m.draftContent = value
		lines := strings.Split(value, "\n")
		preview := Truncate(lines[0], 30)
		m.textInput.SetValue(fmt.Sprintf("%s [+%d lines]", preview, len(lines)-1))
	} else {
		m.draftContent = ""
		m.textInput.SetValue(value)
	}
}

// Reset clears the input
func (m *InputModel) Reset() {
	m.textInput.Reset()
	m.draftContent = ""
}

// IsFocused returns whether the input is focused
func (m InputModel) IsFocused() bool {
	return m.focused
}

// Mode returns the current input mode
func (m InputModel) Mode() InputMode {
	return m.mode
}
