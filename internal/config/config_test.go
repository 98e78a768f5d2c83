package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pointHome redirects the config dir into a temp dir for the test.
func pointHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EDITOR", "vi")
	return home
}

func writeConfigFile(t *testing.T, home, contents string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "chanterm")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0644))
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	req := require.New(t)
	pointHome(t)

	cfg, err := Load()
	req.NoError(err)

	req.Equal("me", cfg.User)
	req.Equal("#composers", cfg.Channel.Name)
	req.Equal(42, cfg.Channel.Members)
	req.Equal("vi", cfg.Editor)
	req.True(cfg.Peers.Enabled)
	req.Equal(4*time.Second, cfg.Peers.MinDelay)
	req.Equal(12*time.Second, cfg.Peers.MaxDelay)
	req.Equal(4, cfg.Scroll.JumpThreshold)
	req.Equal("#7C3AED", cfg.Theme.SelfColor)
	req.Equal("info", cfg.LogLevel)
	req.Equal("G", cfg.Keybinds.Global.JumpBottom)
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	req := require.New(t)
	home := pointHome(t)

	writeConfigFile(t, home, `
user: ali
channel:
  name: "#droidcon-nyc"
  members: 72
peers:
  enabled: false
  min_delay: 1s
  max_delay: 2s
theme:
  self_color: "#FF8800"
keybinds:
  global:
    quit: Q
`)

	cfg, err := Load()
	req.NoError(err)

	// Values from the file win.
	req.Equal("ali", cfg.User)
	req.Equal("#droidcon-nyc", cfg.Channel.Name)
	req.Equal(72, cfg.Channel.Members)
	req.False(cfg.Peers.Enabled)
	req.Equal(time.Second, cfg.Peers.MinDelay)
	req.Equal(2*time.Second, cfg.Peers.MaxDelay)
	req.Equal("#FF8800", cfg.Theme.SelfColor)
	req.Equal("Q", cfg.Keybinds.Global.Quit)

	// Everything the file left out keeps its default.
	req.Equal("vi", cfg.Editor)
	req.Equal(4, cfg.Scroll.JumpThreshold)
	req.Equal("#10B981", cfg.Theme.PeerColor)
	req.Equal("tab", cfg.Keybinds.Global.NextPanel)
	req.Equal("info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	req := require.New(t)
	home := pointHome(t)

	writeConfigFile(t, home, `
user: ali
channel:
  name: "#droidcon-nyc"
`)

	t.Setenv("CHANTERM_USER", "taylor")
	t.Setenv("CHANTERM_CHANNEL_MEMBERS", "7")
	t.Setenv("CHANTERM_LOG_LEVEL", "debug")
	t.Setenv("CHANTERM_PEERS_MIN_DELAY", "500ms")

	cfg, err := Load()
	req.NoError(err)

	req.Equal("taylor", cfg.User)
	req.Equal("#droidcon-nyc", cfg.Channel.Name)
	req.Equal(7, cfg.Channel.Members)
	req.Equal("debug", cfg.LogLevel)
	req.Equal(500*time.Millisecond, cfg.Peers.MinDelay)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "non-hex theme color",
			contents: "theme:\n  self_color: purple\n",
		},
		{
			name:     "unknown log level",
			contents: "log_level: loud\n",
		},
		{
			name:     "max delay below min delay",
			contents: "peers:\n  min_delay: 10s\n  max_delay: 2s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := pointHome(t)
			writeConfigFile(t, home, tt.contents)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_BlankedValuesFallBackToDefaults(t *testing.T) {
	req := require.New(t)
	home := pointHome(t)

	writeConfigFile(t, home, `
user: ""
editor: ""
channel:
  name: ""
  members: 0
`)

	cfg, err := Load()
	req.NoError(err)
	req.Equal("me", cfg.User)
	req.Equal("vi", cfg.Editor)
	req.Equal("#composers", cfg.Channel.Name)
	req.Equal(42, cfg.Channel.Members)
}

func TestSave_WritesConfigFile(t *testing.T) {
	req := require.New(t)
	pointHome(t)

	cfg := DefaultConfig()
	cfg.User = "ali"
	req.NoError(cfg.Save())

	path, err := ConfigPath()
	req.NoError(err)
	req.FileExists(path)

	loaded, err := Load()
	req.NoError(err)
	req.Equal("ali", loaded.User)
}
