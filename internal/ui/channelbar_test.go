package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestChannelBarView(t *testing.T) {
	req := require.New(t)

	m := NewChannelBarModel(testStyles(), "#composers", 42)
	m.SetSize(60)

	view := m.View()
	req.Contains(view, "☰")
	req.Contains(view, "#composers")
	req.Contains(view, "· 42 members")
	req.Contains(view, "⌕")
	req.Contains(view, "ⓘ")
	req.Equal(60, lipgloss.Width(view))
}

func TestChannelBarTruncatesLongNames(t *testing.T) {
	req := require.New(t)

	m := NewChannelBarModel(testStyles(), "#"+strings.Repeat("composers-", 12), 7)
	m.SetSize(40)

	view := m.View()
	req.Equal(40, lipgloss.Width(view))
	req.Contains(view, "...")
	req.Contains(view, "· 7 members")
}
