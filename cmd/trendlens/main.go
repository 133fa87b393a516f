package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trendlens/trendlens/internal/config"
	"github.com/trendlens/trendlens/internal/session"
	"github.com/trendlens/trendlens/internal/tui"
	"github.com/trendlens/trendlens/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("trendlens " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "whoami":
			return runWhoami()
		case "logout":
			return runLogout()
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(2)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}

	store, err := session.NewFileStore()
	if err != nil {
		return err
	}

	// The client needs the session's token and the session needs the
	// client for auth calls, so the client reads the token through a
	// closure over the manager built right after it.
	var manager *session.Manager
	c := client.New(cfg.APIURL, client.TokenFunc(func() string {
		if manager == nil {
			return ""
		}
		return manager.Token()
	}), client.WithLogger(logger))
	manager = session.NewManager(c, store)

	// A stale or broken stored token just means signing in again; the
	// TUI opens on the auth gate in that case.
	if err := manager.Restore(); err != nil && !errors.Is(err, session.ErrSessionExpired) {
		logger.Debug().Err(err).Msg("session restore failed")
	}

	app := tui.NewApp(c, manager, cfg.Theme != "light", version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runWhoami() error {
	store, err := session.NewFileStore()
	if err != nil {
		return err
	}
	manager := session.NewManager(nil, store)
	if err := manager.Restore(); err != nil {
		if errors.Is(err, session.ErrSessionExpired) {
			fmt.Println("Session expired. Run trendlens to sign in again.")
			return nil
		}
		return err
	}
	if !manager.IsAuthenticated() {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Println(manager.Subject())
	return nil
}

func runLogout() error {
	store, err := session.NewFileStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func printHelp() {
	fmt.Print(`trendlens — market trends, forecasts and rankings in your terminal

Usage:
  trendlens            open the dashboard (interactive TUI)
  trendlens whoami     show the signed-in account
  trendlens logout     clear the stored session
  trendlens version    show version

Configuration (~/.trendlens/config.yaml, env overrides):
  api_url    TRENDLENS_API_URL    base URL of the analytics API
  theme      TRENDLENS_THEME      "dark" (default) or "light"
  debug_log  TRENDLENS_DEBUG_LOG  file path for request tracing
`)
}
