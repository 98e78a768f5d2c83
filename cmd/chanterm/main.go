package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chanterm/internal/chat"
	"chanterm/internal/config"
	"chanterm/internal/feed"
	"chanterm/internal/ui"
)

var version = "dev"

func main() {
	// Define flags
	channelName := flag.String("channel", "", "Override the channel name")
	userName := flag.String("user", "", "Override the name messages are sent as")
	noPeers := flag.Bool("no-peers", false, "Disable the scripted channel members")
	showVersion := flag.Bool("version", false, "Show version information")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `chanterm - channel chat for your terminal

Usage:
  chanterm [flags]

Flags:
  -channel string   Override the channel name
  -no-peers         Disable the scripted channel members
  -user string      Override the name messages are sent as
  -version          Show version information
  -h, -help         Show this help message

Key Bindings:
  j/k or ↑/↓        Scroll messages
  G or End          Jump to the latest message
  Tab               Switch panels
  Shift+Tab         Switch panels (reverse)
  Enter             Send message / open profile
  i                 Insert mode in the input box
  v                 Compose in external editor
  Ctrl+A            Attach the demo image
  q or Ctrl+C       Quit

File Locations:
  Config:   ~/.config/chanterm/config.yaml
  Logs:     ~/.config/chanterm/chanterm.log

`)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("chanterm %s\n", version)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flag overrides
	if *channelName != "" {
		cfg.Channel.Name = *channelName
	}
	if *userName != "" {
		cfg.User = *userName
	}
	if *noPeers {
		cfg.Peers.Enabled = false
	}

	// Set up logging
	logFile, err := setupLogging(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not set up logging: %v\n", err)
	} else {
		defer logFile.Close()
	}

	// Write a config file on first launch so there is something to edit
	if path, err := config.ConfigPath(); err == nil {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				log.Warn().Err(err).Msg("could not write initial config")
			}
		}
	}

	conv := seedConversation(cfg)
	composer := chat.NewComposer(conv, cfg.User, nil)

	// Create application
	app := ui.NewApp(cfg, conv, composer)
	app.SetOnMenu(func() {
		log.Info().Msg("menu requested")
	})

	// Set up context for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scripted channel members keep the conversation moving
	peers := feed.New(conv, feed.DefaultScript(), cfg.Peers.MinDelay, cfg.Peers.MaxDelay)
	if cfg.Peers.Enabled {
		peers.Start(ctx)
		defer peers.Stop()
	}

	// Create and run the Bubble Tea program
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes the global logger to a file under the config dir. The
// TUI owns the terminal, so nothing may log to stdout or stderr.
func setupLogging(level string) (*os.File, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(dir, "chanterm.log")
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(f).Level(lvl).With().Timestamp().Logger()

	return f, nil
}

// seedConversation builds the channel with a transcript spanning yesterday
// and today, so the day dividers show up right away.
func seedConversation(cfg *config.Config) *chat.Conversation {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	seed := []chat.Message{
		chat.NewMessage("taylor", "Shipped the new reflow pass to staging", yesterday.Add(-30*time.Minute)),
		chat.NewMessage("taylor", "Scroll anchoring held up under the soak test", yesterday.Add(-28*time.Minute)),
		chat.NewMessage("sara", "Nice. Wrapping at 120 cols still looked off on my end", yesterday.Add(-21*time.Minute)),
		chat.NewMessage("taylor", "That was the gutter math, fixed on the same branch", yesterday.Add(-19*time.Minute)),
		chat.NewMessageWithImage("john", "Posting the before and after", "reflow-before-after.png", yesterday.Add(-12*time.Minute)),
		chat.NewMessage("sara", "Big improvement", yesterday.Add(-10*time.Minute)),
		chat.NewMessage("john", "Morning. Release notes draft is up", now.Add(-9*time.Minute)),
		chat.NewMessage("john", "Flagging the viewport change as behavioral", now.Add(-8*time.Minute)),
		chat.NewMessage("sara", "I'll read it after standup", now.Add(-2*time.Minute)),
	}

	return chat.NewConversation(cfg.Channel.Name, cfg.Channel.Members, seed)
}
