package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"chanterm/internal/chat"
)

// ProfileModel shows a card for a single author, computed from the current
// conversation snapshot. This is where the conversation pane's profile action
// lands.
type ProfileModel struct {
	author string
	self   bool
	count  int
	total  int
	first  time.Time
	last   time.Time

	width  int
	height int
	styles *Styles
}

// NewProfileModel creates an empty profile card.
func NewProfileModel(styles *Styles) ProfileModel {
	return ProfileModel{styles: styles}
}

// SetAuthor points the card at an author and recomputes their stats. user is
// the identity running this client.
func (m *ProfileModel) SetAuthor(author, user string, msgs []chat.Message) {
	authored := lo.Filter(msgs, func(msg chat.Message, _ int) bool {
		return msg.Author == author
	})

	m.author = author
	m.self = author == user
	m.count = len(authored)
	m.total = len(msgs)
	m.first = time.Time{}
	m.last = time.Time{}

	if len(authored) > 0 {
		m.first = authored[0].Timestamp
		m.last = authored[len(authored)-1].Timestamp
	}
}

// Author returns the author the card currently shows.
func (m ProfileModel) Author() string {
	return m.author
}

// SetSize sets the card dimensions
func (m *ProfileModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the profile card centered in the pane
func (m ProfileModel) View() string {
	avatar := m.styles.AvatarPeer
	tag := "member"
	if m.self {
		avatar = m.styles.AvatarSelf
		tag = "you"
	}

	title := avatar.Render(" "+initials(m.author)+" ") + " " +
		m.styles.ProfileTitle.Render(m.author) + " " +
		m.styles.ProfileLabel.Render("("+tag+")")

	share := 0
	if m.total > 0 {
		share = m.count * 100 / m.total
	}

	rows := []string{
		title,
		"",
		m.row("messages", fmt.Sprintf("%d (%d%% of channel)", m.count, share)),
		m.row("first seen", formatRelativeTime(m.first)),
		m.row("last seen", formatRelativeTime(m.last)),
		"",
		m.styles.ProfileLabel.Render("esc to go back"),
	}

	card := m.styles.ProfileCard.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m ProfileModel) row(label, value string) string {
	return m.styles.ProfileLabel.Render(fmt.Sprintf("%-11s", label)) +
		m.styles.ProfileValue.Render(value)
}

// formatRelativeTime formats a time as a relative string
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
