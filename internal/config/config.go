package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds the application configuration
type Config struct {
	// User is the display name attached to messages composed in this client
	User string `yaml:"user" validate:"required"`
	// Channel describes the channel shown on startup
	Channel ChannelConfig `yaml:"channel"`
	// Editor is the command to use for external compose (defaults to $EDITOR or nvim)
	Editor string `yaml:"editor"`
	// EditorArgs are additional arguments to pass to the editor
	EditorArgs []string `yaml:"editor_args"`
	// Peers controls the scripted peer feed
	Peers PeersConfig `yaml:"peers"`
	// Scroll settings
	Scroll ScrollConfig `yaml:"scroll"`
	// Theme settings
	Theme ThemeConfig `yaml:"theme"`
	// Keybinds settings
	Keybinds KeybindConfig `yaml:"keybinds"`
	// LogLevel controls file log verbosity
	LogLevel string `yaml:"log_level" split_words:"true" validate:"oneof=trace debug info warn error"`
}

// ChannelConfig identifies the channel the client joins
type ChannelConfig struct {
	// Name is the channel name shown in the channel bar (default: "#composers")
	Name string `yaml:"name" validate:"required"`
	// Members is the member count shown in the channel bar (default: 42)
	Members int `yaml:"members" validate:"gte=1"`
}

// PeersConfig controls the scripted peer feed that posts into the channel
type PeersConfig struct {
	// Enabled turns the feed on or off (default: true)
	Enabled bool `yaml:"enabled"`
	// MinDelay is the shortest pause between scripted messages (default: 4s)
	MinDelay time.Duration `yaml:"min_delay" split_words:"true" validate:"gte=0"`
	// MaxDelay is the longest pause between scripted messages (default: 12s)
	MaxDelay time.Duration `yaml:"max_delay" split_words:"true" validate:"gtefield=MinDelay"`
}

// ScrollConfig holds scroll behavior settings
type ScrollConfig struct {
	// JumpThreshold is how many lines above the bottom the view must be
	// before the jump-to-bottom indicator appears (default: 4)
	JumpThreshold int `yaml:"jump_threshold" split_words:"true" validate:"gte=1"`
}

// ThemeConfig holds theme-related settings
type ThemeConfig struct {
	// SelfColor is the accent for messages authored by this client (hex)
	SelfColor string `yaml:"self_color" split_words:"true" validate:"hexcolor"`
	// PeerColor is the accent for messages from everyone else (hex)
	PeerColor string `yaml:"peer_color" split_words:"true" validate:"hexcolor"`
	// DividerColor is used for day dividers and frame chrome (hex)
	DividerColor string `yaml:"divider_color" split_words:"true" validate:"hexcolor"`
}

// KeybindConfig holds keybind-related settings
type KeybindConfig struct {
	// LeaderKey is the global leader key for navigation (default: "ctrl+space")
	LeaderKey string `yaml:"leader_key" split_words:"true"`
	// Navigation keybinds (used after leader key)
	Navigation NavigationKeybinds `yaml:"navigation"`
	// Global keybinds (without leader)
	Global GlobalKeybinds `yaml:"global"`
}

// NavigationKeybinds holds panel navigation keybinds (used after leader key)
type NavigationKeybinds struct {
	Messages string `yaml:"messages"` // default: "m"
	Input    string `yaml:"input"`    // default: "i"
}

// GlobalKeybinds holds global keybinds (without leader)
type GlobalKeybinds struct {
	Quit       string `yaml:"quit"`        // default: "q"
	NextPanel  string `yaml:"next_panel"`  // default: "tab"
	PrevPanel  string `yaml:"prev_panel"`  // default: "shift+tab"
	Help       string `yaml:"help"`        // default: "?"
	JumpBottom string `yaml:"jump_bottom"` // default: "G"
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "nvim"
	}

	return &Config{
		User: "me",
		Channel: ChannelConfig{
			Name:    "#composers",
			Members: 42,
		},
		Editor:     editor,
		EditorArgs: []string{},
		Peers: PeersConfig{
			Enabled:  true,
			MinDelay: 4 * time.Second,
			MaxDelay: 12 * time.Second,
		},
		Scroll: ScrollConfig{
			JumpThreshold: 4,
		},
		Theme: ThemeConfig{
			SelfColor:    "#7C3AED",
			PeerColor:    "#10B981",
			DividerColor: "#6B7280",
		},
		Keybinds: DefaultKeybinds(),
		LogLevel: "info",
	}
}

// DefaultKeybinds returns the default keybind configuration
func DefaultKeybinds() KeybindConfig {
	return KeybindConfig{
		LeaderKey: "ctrl+space",
		Navigation: NavigationKeybinds{
			Messages: "m",
			Input:    "i",
		},
		Global: GlobalKeybinds{
			Quit:       "q",
			NextPanel:  "tab",
			PrevPanel:  "shift+tab",
			Help:       "?",
			JumpBottom: "G",
		},
	}
}

// ConfigDir returns the path to the config directory
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chanterm"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads the configuration from disk, applies CHANTERM_* environment
// overrides, and validates the result. Missing files yield defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// keep defaults
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	mergeDefaults(cfg)

	if err := envconfig.Process("chanterm", cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration against its declared constraints
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// mergeDefaults fills any values a config file explicitly blanked out
func mergeDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.User == "" {
		cfg.User = defaults.User
	}
	if cfg.Channel.Name == "" {
		cfg.Channel.Name = defaults.Channel.Name
	}
	if cfg.Channel.Members <= 0 {
		cfg.Channel.Members = defaults.Channel.Members
	}
	if cfg.Editor == "" {
		cfg.Editor = defaults.Editor
	}
	if cfg.Peers.MinDelay <= 0 {
		cfg.Peers.MinDelay = defaults.Peers.MinDelay
	}
	if cfg.Peers.MaxDelay <= 0 {
		cfg.Peers.MaxDelay = defaults.Peers.MaxDelay
	}
	if cfg.Scroll.JumpThreshold <= 0 {
		cfg.Scroll.JumpThreshold = defaults.Scroll.JumpThreshold
	}
	if cfg.Theme.SelfColor == "" {
		cfg.Theme.SelfColor = defaults.Theme.SelfColor
	}
	if cfg.Theme.PeerColor == "" {
		cfg.Theme.PeerColor = defaults.Theme.PeerColor
	}
	if cfg.Theme.DividerColor == "" {
		cfg.Theme.DividerColor = defaults.Theme.DividerColor
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	kb := DefaultKeybinds()
	if cfg.Keybinds.LeaderKey == "" {
		cfg.Keybinds.LeaderKey = kb.LeaderKey
	}
	if cfg.Keybinds.Navigation.Messages == "" {
		cfg.Keybinds.Navigation.Messages = kb.Navigation.Messages
	}
	if cfg.Keybinds.Navigation.Input == "" {
		cfg.Keybinds.Navigation.Input = kb.Navigation.Input
	}
	if cfg.Keybinds.Global.Quit == "" {
		cfg.Keybinds.Global.Quit = kb.Global.Quit
	}
	if cfg.Keybinds.Global.NextPanel == "" {
		cfg.Keybinds.Global.NextPanel = kb.Global.NextPanel
	}
	if cfg.Keybinds.Global.PrevPanel == "" {
		cfg.Keybinds.Global.PrevPanel = kb.Global.PrevPanel
	}
	if cfg.Keybinds.Global.Help == "" {
		cfg.Keybinds.Global.Help = kb.Global.Help
	}
	if cfg.Keybinds.Global.JumpBottom == "" {
		cfg.Keybinds.Global.JumpBottom = kb.Global.JumpBottom
	}
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
