// Package tui implements the interactive terminal client: an auth
// gate followed by the dashboard, forecast and analysis views.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trendlens/trendlens/internal/browser"
	"github.com/trendlens/trendlens/pkg/client"
)

// Session is the slice of the session manager the UI reads and drives.
type Session interface {
	IsAuthenticated() bool
	Subject() string
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	Logout() error
}

type view int

const (
	viewDashboard view = iota
	viewForecast
	viewAnalysis
)

// themeChangedMsg propagates a palette flip to the chart views.
type themeChangedMsg struct {
	dark bool
}

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	session Session
	dark    bool
	version string

	authed bool
	view   view

	auth      authModel
	dashboard dashboardModel
	forecast  forecastModel
	analysis  analysisModel

	helpOpen   bool
	helpCursor int
	width      int
	height     int
}

// NewApp creates the root model. The session decides the entry view:
// an authenticated session opens straight onto the dashboard.
func NewApp(c *client.Client, s Session, dark bool, version string) App {
	return App{
		client:    c,
		session:   s,
		dark:      dark,
		version:   version,
		authed:    s.IsAuthenticated(),
		auth:      newAuthModel(s),
		dashboard: newDashboardModel(c, s.Subject()),
		forecast:  newForecastModel(c, dark),
		analysis:  newAnalysisModel(c, dark),
	}
}

func (a App) Init() tea.Cmd {
	if a.authed {
		return a.dashboard.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.forecast, _ = a.forecast.Update(bodyMsg)
		a.analysis, _ = a.analysis.Update(bodyMsg)
		return a, nil

	case authResultMsg:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		if msg.err == nil && msg.mode == modeLogin {
			a.authed = true
			a.view = viewDashboard
			a.dashboard = newDashboardModel(a.client, a.session.Subject())
			return a, a.dashboard.Init()
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Tokens expire without an event: any keypress after expiry
		// drops back to the sign-in form.
		if a.authed && !a.session.IsAuthenticated() {
			a.authed = false
			a.helpOpen = false
			a.auth = newAuthModel(a.session)
			a.auth.note = "session expired, sign in again"
			return a, nil
		}

		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		if !a.authed {
			var cmd tea.Cmd
			a.auth, cmd = a.auth.Update(msg)
			return a, cmd
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "t":
				a.dark = !a.dark
				themeMsg := themeChangedMsg{dark: a.dark}
				a.forecast, _ = a.forecast.Update(themeMsg)
				a.analysis, _ = a.analysis.Update(themeMsg)
				return a, nil
			case "ctrl+l":
				a.session.Logout() //nolint:errcheck // in-memory state is cleared regardless
				a.authed = false
				a.auth = newAuthModel(a.session)
				a.auth.note = "signed out"
				return a, nil
			case "1":
				if a.view != viewDashboard {
					a.view = viewDashboard
					return a, a.dashboard.Init()
				}
				return a, nil
			case "2":
				a.view = viewForecast
				return a, nil
			case "3":
				a.view = viewAnalysis
				return a, nil
			}
		}
	}

	if !a.authed {
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewForecast:
		a.forecast, cmd = a.forecast.Update(msg)
	case viewAnalysis:
		a.analysis, cmd = a.analysis.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewForecast:
		return a.forecast.editing
	case viewAnalysis:
		return a.analysis.editing
	}
	return false
}

func (a App) View() string {
	header := a.renderHeader()

	if !a.authed {
		body := a.auth.View()
		help := " " + helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " +
			helpEntry("ctrl+r", "mode") + "  " + helpEntry("ctrl+c", "quit")
		body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
		return fmt.Sprintf("%s\n%s\n%s", header, body, help)
	}

	tabs := a.renderTabs()

	var body, help string
	switch a.view {
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("r", "refresh") + "  " +
			helpEntry("t", "theme") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewForecast:
		body = a.forecast.View()
		if a.forecast.editing {
			help = " " + helpEntry("tab", "next") + "  " + helpEntry("h/l", "model") + "  " +
				helpEntry("enter", "fetch") + "  " + helpEntry("esc", "nav")
		} else {
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("i", "edit") + "  " +
				helpEntry("e", "export png") + "  " + helpEntry("t", "theme") + "  " + helpEntry("q", "quit")
		}
	case viewAnalysis:
		body = a.analysis.View()
		if a.analysis.editing {
			help = " " + helpEntry("enter", "fetch") + "  " + helpEntry("esc", "nav")
		} else {
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " +
				helpEntry("y", "yank") + "  " + helpEntry("/", "edit") + "  " + helpEntry("q", "quit")
		}
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabs, body, help)
}

func (a App) renderHeader() string {
	logo := renderLogo()
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	var sub string
	if a.authed && a.session.Subject() != "" {
		sub = metaStyle.Render(a.session.Subject())
	} else {
		sub = metaStyle.Render("v" + a.version)
	}
	subWidth := lipgloss.Width(sub)
	subPad := (a.width - subWidth) / 2
	if subPad < 0 {
		subPad = 0
	}
	return header + "\n" + strings.Repeat(" ", subPad) + sub
}

func (a App) renderTabs() string {
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Forecast", viewForecast},
		{"3", "Analysis", viewAnalysis},
	}

	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}
