package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChannelBarModel renders the channel identity line pinned to the top of the
// screen: menu glyph, channel name, member count, and the two action icons.
// The icons are placeholders; their keys only raise a status note.
type ChannelBarModel struct {
	name    string
	members int
	width   int
	styles  *Styles
}

// NewChannelBarModel creates the channel bar.
func NewChannelBarModel(styles *Styles, name string, members int) ChannelBarModel {
	return ChannelBarModel{
		name:    name,
		members: members,
		styles:  styles,
	}
}

// SetSize sets the bar width
func (m *ChannelBarModel) SetSize(width int) {
	m.width = width
}

// View renders the channel bar
func (m ChannelBarModel) View() string {
	inner := max(0, m.width-2)

	icons := m.styles.ChannelIcons.Render("⌕  ⓘ")
	members := m.styles.ChannelMembers.Render(fmt.Sprintf("· %d members", m.members))

	avail := inner - lipgloss.Width(icons) - lipgloss.Width(members) - 6
	name := m.styles.ChannelName.Render(Truncate(m.name, max(1, avail)))

	left := "☰  " + name + " " + members
	gap := max(1, inner-lipgloss.Width(left)-lipgloss.Width(icons))

	return m.styles.ChannelBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + icons)
}
