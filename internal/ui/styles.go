package ui

import (
	"github.com/charmbracelet/lipgloss"

	"chanterm/internal/config"
)

// Neutral colors used throughout the application. Accent colors come from the
// theme config instead so they can be overridden per user.
var (
	AccentColor = lipgloss.Color("#3B82F6") // Blue
	CyanColor   = lipgloss.Color("#06B6D4") // Cyan - for insert mode

	BackgroundColor = lipgloss.Color("#1F2937")
	SurfaceColor    = lipgloss.Color("#374151")
	BorderColor     = lipgloss.Color("#4B5563")

	TextColor        = lipgloss.Color("#F9FAFB")
	TextMutedColor   = lipgloss.Color("#9CA3AF")
	TextSuccessColor = lipgloss.Color("#10B981")
	TextErrorColor   = lipgloss.Color("#EF4444")
	TextWarningColor = lipgloss.Color("#F59E0B")
)

// Styles for different UI components
type Styles struct {
	// App-level styles
	App             lipgloss.Style
	StatusBar       lipgloss.Style
	StatusBarLeader lipgloss.Style // Special style when leader key is active
	HelpBar         lipgloss.Style

	// Panel styles
	Panel       lipgloss.Style
	PanelActive lipgloss.Style

	// Channel bar styles
	ChannelBar     lipgloss.Style
	ChannelName    lipgloss.Style
	ChannelMembers lipgloss.Style
	ChannelIcons   lipgloss.Style

	// Message list styles
	DayDivider    lipgloss.Style
	AvatarSelf    lipgloss.Style
	AvatarPeer    lipgloss.Style
	AuthorSelf    lipgloss.Style
	AuthorPeer    lipgloss.Style
	MessageTime   lipgloss.Style
	MessageBody   lipgloss.Style
	MessageImage  lipgloss.Style
	Cursor        lipgloss.Style
	JumpIndicator lipgloss.Style

	// Profile styles
	ProfileCard  lipgloss.Style
	ProfileTitle lipgloss.Style
	ProfileLabel lipgloss.Style
	ProfileValue lipgloss.Style

	// Input styles
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputPrompt  lipgloss.Style
}

// NewStyles builds the application styles from the configured theme.
func NewStyles(theme config.ThemeConfig) *Styles {
	self := lipgloss.Color(theme.SelfColor)
	peer := lipgloss.Color(theme.PeerColor)
	divider := lipgloss.Color(theme.DividerColor)

	s := &Styles{}

	// App-level styles
	s.App = lipgloss.NewStyle().
		Background(BackgroundColor)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	s.StatusBarLeader = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(TextWarningColor).
		Bold(true).
		Padding(0, 1)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Background(SurfaceColor).
		Padding(0, 1)

	// Panel styles
	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	s.PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(self).
		Padding(0, 1)

	// Channel bar styles
	s.ChannelBar = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	s.ChannelName = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	s.ChannelMembers = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	s.ChannelIcons = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	// Message list styles
	s.DayDivider = lipgloss.NewStyle().
		Foreground(divider)

	s.AvatarSelf = lipgloss.NewStyle().
		Foreground(self).
		Reverse(true).
		Bold(true)

	s.AvatarPeer = lipgloss.NewStyle().
		Foreground(peer).
		Reverse(true).
		Bold(true)

	s.AuthorSelf = lipgloss.NewStyle().
		Foreground(self).
		Bold(true)

	s.AuthorPeer = lipgloss.NewStyle().
		Foreground(peer).
		Bold(true)

	s.MessageTime = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Italic(true)

	s.MessageBody = lipgloss.NewStyle().
		Foreground(TextColor)

	s.MessageImage = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(divider).
		Padding(0, 1)

	s.Cursor = lipgloss.NewStyle().
		Foreground(AccentColor).
		Bold(true)

	s.JumpIndicator = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(AccentColor).
		Bold(true).
		Padding(0, 1)

	// Profile styles
	s.ProfileCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2)

	s.ProfileTitle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	s.ProfileLabel = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	s.ProfileValue = lipgloss.NewStyle().
		Foreground(TextColor)

	// Input styles
	s.Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	s.InputFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(self).
		Padding(0, 1)

	s.InputPrompt = lipgloss.NewStyle().
		Foreground(self)

	return s
}

// Truncate truncates a string to the specified width
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
