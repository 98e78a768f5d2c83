package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"chanterm/internal/chat"
	"chanterm/internal/config"
)

// AppState represents the current screen of the application
type AppState int

const (
	StateConversation AppState = iota
	StateProfile
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	PanelMessages FocusedPanel = iota
	PanelInput
)

// AppKeyMap defines the global key bindings
type AppKeyMap struct {
	Quit     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Help     key.Binding
	Menu     key.Binding
	Search   key.Binding
	Info     key.Binding
}

// KeyMapFromConfig builds an AppKeyMap from the configuration
func KeyMapFromConfig(cfg *config.Config) AppKeyMap {
	kb := cfg.Keybinds
	return AppKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(kb.Global.Quit, "ctrl+c"),
			key.WithHelp(kb.Global.Quit, "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys(kb.Global.NextPanel),
			key.WithHelp(kb.Global.NextPanel, "next panel"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys(kb.Global.PrevPanel),
			key.WithHelp(kb.Global.PrevPanel, "prev panel"),
		),
		Help: key.NewBinding(
			key.WithKeys(kb.Global.Help),
			key.WithHelp(kb.Global.Help, "help"),
		),
		Menu: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "menu"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Info: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "channel info"),
		),
	}
}

// App is the main application model
type App struct {
	// Configuration
	cfg    *config.Config
	styles *Styles
	keyMap AppKeyMap

	// State
	state            AppState
	focusedPanel     FocusedPanel
	statusMsg        string
	leaderKeyPressed bool // Track if leader key was pressed (for leader+key combos)
	showFullHelp     bool

	// Size
	width  int
	height int

	// Components
	channelBar   ChannelBarModel
	conversation ConversationModel
	input        InputModel
	profile      ProfileModel

	// Collaborators
	conv     *chat.Conversation
	composer *chat.Composer
	onMenu   func()

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// conversationUpdatedMsg is emitted whenever the conversation gains messages.
type conversationUpdatedMsg struct{}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, conv *chat.Conversation, composer *chat.Composer) *App {
	ctx, cancel := context.WithCancel(context.Background())
	styles := NewStyles(cfg.Theme)

	name, members := conv.Channel()

	a := &App{
		cfg:          cfg,
		styles:       styles,
		keyMap:       KeyMapFromConfig(cfg),
		state:        StateConversation,
		focusedPanel: PanelInput,
		channelBar:   NewChannelBarModel(styles, name, members),
		conversation: NewConversationModel(styles, cfg.User, cfg.Scroll.JumpThreshold, DefaultConversationKeyMap(cfg.Keybinds.Global.JumpBottom)),
		input:        NewInputModel(styles),
		profile:      NewProfileModel(styles),
		conv:         conv,
		composer:     composer,
		ctx:          ctx,
		cancel:       cancel,
	}

	a.conversation.SetMessages(conv.Messages())
	a.input.SetFocused(true)

	return a
}

// SetOnMenu wires the channel bar's navigation icon callback.
func (a *App) SetOnMenu(fn func()) {
	a.onMenu = fn
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		a.waitForUpdates(),
	)
}

// waitForUpdates blocks on the conversation's subscription channel and turns
// each signal into a Bubble Tea message. It requeues itself after every hit.
func (a *App) waitForUpdates() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.ctx.Done():
			return nil
		case <-a.conv.Updates():
			return conversationUpdatedMsg{}
		}
	}
}

// Update handles all application messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()

	case tea.KeyMsg:
		// Handle leader key combinations first
		if a.leaderKeyPressed {
			// Escape cancels leader mode
			if msg.String() == "esc" {
				a.leaderKeyPressed = false
				a.statusMsg = ""
				return a, nil
			}
			a.leaderKeyPressed = false // Reset leader state
			a.statusMsg = ""
			if cmd := a.handleLeaderKey(msg); cmd != nil {
				return a, cmd
			}
			if a.handleLeaderNavigation(msg) {
				return a, nil
			}
			// Leader was pressed but next key wasn't a valid combo - continue normal handling
		}

		// Check if leader key was pressed
		if a.matchesLeaderKey(msg) {
			a.leaderKeyPressed = true
			a.statusMsg = "-- LEADER --"
			return a, nil
		}

		if a.state == StateProfile {
			return a, a.handleProfileInput(msg)
		}

		// Handle global keys
		switch {
		case key.Matches(msg, a.keyMap.Quit):
			// Letter quit must not fire while typing a message
			if a.typing() && msg.String() != "ctrl+c" {
				break
			}
			a.cancel()
			return a, tea.Quit

		case key.Matches(msg, a.keyMap.Tab), key.Matches(msg, a.keyMap.ShiftTab):
			a.cycleFocus()
			return a, nil

		case key.Matches(msg, a.keyMap.Help):
			if a.typing() {
				break
			}
			a.showFullHelp = !a.showFullHelp
			return a, nil

		case key.Matches(msg, a.keyMap.Menu):
			if a.onMenu != nil {
				a.onMenu()
			}
			a.statusMsg = "Menu opened"
			log.Debug().Msg("navigation icon pressed")
			return a, nil

		case key.Matches(msg, a.keyMap.Search):
			// Placeholder icon, same as tapping it on the bar
			if a.typing() {
				break
			}
			a.statusMsg = "Search isn't available yet"
			return a, nil

		case key.Matches(msg, a.keyMap.Info):
			a.statusMsg = "Channel info isn't available yet"
			return a, nil
		}

	case conversationUpdatedMsg:
		a.conversation.SetMessages(a.conv.Messages())
		// Keep listening for further appends
		cmds = append(cmds, a.waitForUpdates())

	case SendMessageMsg:
		if sent, ok := a.composer.SubmitWithImage(msg.Content, msg.Image); ok {
			a.statusMsg = "Message sent"
			log.Debug().Str("id", sent.ID).Msg("message submitted")
		}

	case ProfileRequestMsg:
		a.profile.SetAuthor(msg.Author, a.cfg.User, a.conv.Messages())
		a.state = StateProfile
		a.statusMsg = fmt.Sprintf("Profile: %s", msg.Author)
		log.Debug().Str("author", msg.Author).Msg("profile opened")
		return a, nil

	case OpenEditorMsg:
		return a, StartEditorCmd(a.cfg, msg.InitialContent)

	case EditorResultMsg:
		if msg.Err != nil {
			a.statusMsg = fmt.Sprintf("Editor error: %v", msg.Err)
		} else {
			// Put content in input box for review before sending
			a.input.SetValue(msg.Content)
			a.focusPanel(PanelInput)
			a.statusMsg = "Press Enter to send"
		}

	case EditorCancelledMsg:
		a.statusMsg = "Message cancelled"
	}

	// Update focused component
	switch a.focusedPanel {
	case PanelMessages:
		var cmd tea.Cmd
		a.conversation, cmd = a.conversation.Update(msg)
		cmds = append(cmds, cmd)

	case PanelInput:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// typing reports whether keystrokes currently land in the input box.
func (a *App) typing() bool {
	return a.focusedPanel == PanelInput && a.input.Mode() == ModeInsert
}

// handleProfileInput handles keys while the profile card is open
func (a *App) handleProfileInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		a.state = StateConversation
		a.statusMsg = ""
	case "ctrl+c":
		a.cancel()
		return tea.Quit
	}
	return nil
}

// View renders the application
func (a *App) View() string {
	if a.state == StateProfile {
		return a.renderProfile()
	}
	return a.renderConversation()
}

// renderConversation renders the main screen: channel bar on top, history,
// input box, then the status and help bars.
func (a *App) renderConversation() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		a.channelBar.View(),
		a.conversation.View(),
		a.input.View(),
		a.renderStatusBar(),
		a.renderHelpBar(),
	)

	return a.styles.App.
		MaxHeight(a.height).
		MaxWidth(a.width).
		Render(content)
}

// renderProfile renders the profile screen
func (a *App) renderProfile() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		a.channelBar.View(),
		a.profile.View(),
		a.renderStatusBar(),
		a.renderHelpBar(),
	)

	return a.styles.App.
		MaxHeight(a.height).
		MaxWidth(a.width).
		Render(content)
}

// renderStatusBar renders the status bar
func (a *App) renderStatusBar() string {
	left := "chanterm"
	if a.statusMsg != "" {
		left = a.statusMsg
	}

	var panelName string
	switch {
	case a.state == StateProfile:
		panelName = "[Profile]"
	case a.focusedPanel == PanelMessages:
		panelName = "[Messages]"
	default:
		panelName = "[Input]"
	}

	spacing := a.width - lipgloss.Width(left) - lipgloss.Width(panelName) - 2
	if spacing < 1 {
		spacing = 1
	}

	status := left + strings.Repeat(" ", spacing) + panelName

	// Use special style when leader key is active
	if a.leaderKeyPressed {
		return a.styles.StatusBarLeader.Width(a.width).Render(status)
	}
	return a.styles.StatusBar.Width(a.width).Render(status)
}

// renderHelpBar renders the help bar
func (a *App) renderHelpBar() string {
	kb := a.cfg.Keybinds

	// Show leader key options when leader is pressed
	if a.leaderKeyPressed {
		help := fmt.Sprintf("%s: messages | %s: input | %s: quit | Esc: cancel",
			kb.Navigation.Messages, kb.Navigation.Input, kb.Global.Quit)
		return a.styles.HelpBar.Width(a.width).Render(help)
	}

	if a.state == StateProfile {
		return a.styles.HelpBar.Width(a.width).Render("Esc: back | ctrl+c: quit")
	}

	leaderHint := fmt.Sprintf("%s+%s/%s: panels",
		kb.LeaderKey, kb.Navigation.Messages, kb.Navigation.Input)

	var help string
	switch a.focusedPanel {
	case PanelMessages:
		help = fmt.Sprintf("↑/k ↓/j: scroll | %s/end: latest | enter/p: profile | %s | %s: quit",
			kb.Global.JumpBottom, leaderHint, kb.Global.Quit)
		if a.showFullHelp {
			help = fmt.Sprintf("↑/k ↓/j: scroll | pgup/pgdn: page | gg/home: top | %s/end: latest | enter/p: profile | ctrl+n: menu | /: search | ctrl+o: info | %s",
				kb.Global.JumpBottom, leaderHint)
		}
	case PanelInput:
		if a.input.Mode() == ModeNormal {
			help = fmt.Sprintf("[NORMAL] i: insert | v: editor | d: clear | Enter: send | %s", leaderHint)
		} else {
			help = fmt.Sprintf("[INSERT] Esc: normal mode | Enter: send | ctrl+a: attach | %s", leaderHint)
		}
	}
	return a.styles.HelpBar.Width(a.width).Render(help)
}

// updateSizes updates component sizes based on current terminal dimensions.
// Fixed chrome: channel bar, status bar, help bar (1 line each) and the
// input box (3 lines with its border).
func (a *App) updateSizes() {
	convHeight := a.height - 6
	if convHeight < 4 {
		convHeight = 4
	}

	a.channelBar.SetSize(a.width)
	a.conversation.SetSize(a.width, convHeight)
	a.input.SetWidth(a.width)
	a.profile.SetSize(a.width, convHeight+3)
}

// cycleFocus toggles between the two panels
func (a *App) cycleFocus() {
	if a.focusedPanel == PanelMessages {
		a.focusPanel(PanelInput)
	} else {
		a.focusPanel(PanelMessages)
	}
}

// focusPanel focuses a specific panel directly
func (a *App) focusPanel(panel FocusedPanel) {
	a.conversation.SetFocused(false)
	a.input.SetFocused(false)

	a.focusedPanel = panel

	switch panel {
	case PanelMessages:
		a.conversation.SetFocused(true)
		a.statusMsg = "Messages"
	case PanelInput:
		a.input.SetFocused(true)
		a.statusMsg = "Input"
	}
}

// handleLeaderKey handles commands after leader key is pressed
// Returns a command if handled, nil otherwise
func (a *App) handleLeaderKey(msg tea.KeyMsg) tea.Cmd {
	kb := a.cfg.Keybinds

	// Check for quit with leader
	if msg.String() == kb.Global.Quit {
		a.cancel()
		return tea.Quit
	}

	return nil
}

// matchesLeaderKey checks if the key message matches the configured leader key
// Handles various representations of key combinations like ctrl+space
func (a *App) matchesLeaderKey(msg tea.KeyMsg) bool {
	leaderKey := a.cfg.Keybinds.LeaderKey
	keyStr := msg.String()

	// Direct match
	if keyStr == leaderKey {
		return true
	}

	// Handle ctrl+space specifically - bubbletea represents it as "ctrl+ " or NUL
	if leaderKey == "ctrl+space" {
		if keyStr == "ctrl+ " || keyStr == "ctrl+@" || msg.Type == tea.KeyCtrlAt {
			return true
		}
		// Also check for raw NUL character (ASCII 0)
		if len(keyStr) == 1 && keyStr[0] == 0 {
			return true
		}
	}

	return false
}

// handleLeaderNavigation handles panel navigation after leader key
// Returns true if navigation was handled
func (a *App) handleLeaderNavigation(msg tea.KeyMsg) bool {
	kb := a.cfg.Keybinds

	switch msg.String() {
	case kb.Navigation.Messages:
		a.focusPanel(PanelMessages)
		return true
	case kb.Navigation.Input:
		a.focusPanel(PanelInput)
		return true
	}

	return false
}
