package ui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"chanterm/internal/config"
)

func TestEditorSessionLifecycle(t *testing.T) {
	req := require.New(t)

	cfg := config.DefaultConfig()
	cfg.Editor = "vi"
	cfg.EditorArgs = []string{"-n"}

	s, err := NewEditorSession(cfg, "draft body\n")
	req.NoError(err)
	defer s.Cleanup()

	content, err := s.ReadContent()
	req.NoError(err)
	req.Equal("draft body", content)

	cmd := s.Command()
	req.Equal("vi", cmd.Args[0])
	req.Equal("-n", cmd.Args[1])
	req.Equal(s.tmpPath, cmd.Args[len(cmd.Args)-1])

	s.Cleanup()
	_, err = os.Stat(s.tmpPath)
	req.True(os.IsNotExist(err))
}

func TestEditorCommandFallsBackToEnv(t *testing.T) {
	req := require.New(t)
	t.Setenv("EDITOR", "hx")

	cfg := config.DefaultConfig()
	cfg.Editor = ""

	s, err := NewEditorSession(cfg, "")
	req.NoError(err)
	defer s.Cleanup()

	req.Equal("hx", s.Command().Args[0])

	// Whitespace-only content reads back empty, which cancels the send
	content, err := s.ReadContent()
	req.NoError(err)
	req.Empty(content)
}
