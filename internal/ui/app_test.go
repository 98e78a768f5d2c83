package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"chanterm/internal/chat"
	"chanterm/internal/config"
)

func newTestApp(t *testing.T, seed []chat.Message) (*App, *chat.Conversation) {
	t.Helper()

	cfg := config.DefaultConfig()
	conv := chat.NewConversation("#composers", 42, seed)
	composer := chat.NewComposer(conv, cfg.User, nil)

	a := NewApp(cfg, conv, composer)
	a = updateApp(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	return a, conv
}

func updateApp(t *testing.T, a *App, msg tea.Msg) *App {
	t.Helper()
	model, _ := a.Update(msg)
	return model.(*App)
}

func TestAppFocusCycling(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t, nil)

	req.Equal(PanelInput, a.focusedPanel)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab})
	req.Equal(PanelMessages, a.focusedPanel)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab})
	req.Equal(PanelInput, a.focusedPanel)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	req.Equal(PanelMessages, a.focusedPanel)
}

func TestAppSendMessageAppendsToConversation(t *testing.T) {
	req := require.New(t)
	a, conv := newTestApp(t, nil)

	a = updateApp(t, a, SendMessageMsg{Content: "hello channel"})

	msgs := conv.Messages()
	req.Len(msgs, 1)
	req.Equal(a.cfg.User, msgs[0].Author)
	req.Equal("hello channel", msgs[0].Content)
	req.Equal("Message sent", a.statusMsg)
}

func TestAppConversationPump(t *testing.T) {
	req := require.New(t)
	a, conv := newTestApp(t, nil)

	conv.Append(chat.NewMessage("sara", "ping", time.Now()))

	cmd := a.waitForUpdates()
	msg := cmd()
	req.IsType(conversationUpdatedMsg{}, msg)

	a = updateApp(t, a, msg)
	req.Len(a.conversation.messages, 1)
	req.Equal("ping", a.conversation.messages[0].Content)
}

func TestAppProfileFlow(t *testing.T) {
	req := require.New(t)
	seed := []chat.Message{chat.NewMessage("sara", "hi there", time.Now())}
	a, _ := newTestApp(t, seed)

	a = updateApp(t, a, ProfileRequestMsg{Author: "sara"})
	req.Equal(StateProfile, a.state)

	view := a.View()
	req.Contains(view, "sara")
	req.Contains(view, "[Profile]")

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEscape})
	req.Equal(StateConversation, a.state)
}

func TestAppQuitGuardWhileTyping(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t, nil)

	// A bare q lands in the input box instead of quitting
	a = updateApp(t, a, keyRunes("q"))
	req.Equal("q", a.input.Value())

	// ctrl+c always quits
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	a = model.(*App)
	req.NotNil(cmd)
	req.IsType(tea.QuitMsg{}, cmd())

	// With the messages panel focused, q quits directly
	b, _ := newTestApp(t, nil)
	b = updateApp(t, b, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = b.Update(keyRunes("q"))
	req.NotNil(cmd)
	req.IsType(tea.QuitMsg{}, cmd())
}

func TestAppLeaderNavigation(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t, nil)

	leader := tea.KeyMsg{Type: tea.KeyCtrlAt} // ctrl+space

	a = updateApp(t, a, leader)
	req.True(a.leaderKeyPressed)
	req.Equal("-- LEADER --", a.statusMsg)

	a = updateApp(t, a, keyRunes("m"))
	req.False(a.leaderKeyPressed)
	req.Equal(PanelMessages, a.focusedPanel)

	a = updateApp(t, a, leader)
	a = updateApp(t, a, keyRunes("i"))
	req.Equal(PanelInput, a.focusedPanel)

	// Escape cancels leader mode without moving focus
	a = updateApp(t, a, leader)
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEscape})
	req.False(a.leaderKeyPressed)
	req.Equal(PanelInput, a.focusedPanel)

	// Leader+quit quits even from the input panel
	a = updateApp(t, a, leader)
	model, cmd := a.Update(keyRunes("q"))
	a = model.(*App)
	req.NotNil(cmd)
	req.IsType(tea.QuitMsg{}, cmd())
}

func TestAppEditorRoundTrip(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t, nil)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab}) // leave the input panel
	a = updateApp(t, a, EditorResultMsg{Content: "polished text"})

	req.Equal(PanelInput, a.focusedPanel)
	req.Equal("polished text", a.input.Value())
	req.Equal("Press Enter to send", a.statusMsg)

	a = updateApp(t, a, EditorCancelledMsg{})
	req.Equal("Message cancelled", a.statusMsg)
}

func TestAppMenuCallback(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t, nil)

	var called bool
	a.SetOnMenu(func() { called = true })

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlN})
	req.True(called)
	req.Equal("Menu opened", a.statusMsg)
}

func TestAppInertIcons(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t, nil)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab}) // focus messages
	a = updateApp(t, a, keyRunes("/"))
	req.Equal("Search isn't available yet", a.statusMsg)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlO})
	req.Equal("Channel info isn't available yet", a.statusMsg)

	// While typing, / is just a character
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyTab})
	a = updateApp(t, a, keyRunes("a/b"))
	req.Equal("a/b", a.input.Value())
}

func TestAppViewComposition(t *testing.T) {
	req := require.New(t)
	seed := []chat.Message{chat.NewMessage("sara", "hi there", time.Now())}
	a, _ := newTestApp(t, seed)

	view := a.View()
	req.Equal(30, lipgloss.Height(view))
	req.Contains(view, "#composers")
	req.Contains(view, "· 42 members")
	req.Contains(view, "hi there")
	req.Contains(view, "[Input]")
	req.Contains(view, "[INSERT]")
}
