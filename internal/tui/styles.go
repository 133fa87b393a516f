package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles: neutral chrome, readable on both backgrounds
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#818cf8")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4a5264"))

	// KPI cards
	cardBorderColor = lipgloss.Color("#2a2f3e")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cardBorderColor).
			Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878"))

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)
)

// ChartPalette is the fixed set of colors for one theme. A palette
// carries presentation only and never touches series values: the same
// composed series renders under either palette unchanged.
type ChartPalette struct {
	Historical string
	Forecast   string
	Neutral    string
	Tick       string
	Rising     string
}

// PaletteFor maps the theme flag to its palette. Same flag, same
// palette, no other inputs.
func PaletteFor(dark bool) ChartPalette {
	if dark {
		return ChartPalette{
			Historical: "#818cf8",
			Forecast:   "#f472b6",
			Neutral:    "#9ca3af",
			Tick:       "#6b7280",
			Rising:     "#22d3ee",
		}
	}
	return ChartPalette{
		Historical: "#4f46e5",
		Forecast:   "#ef4444",
		Neutral:    "#6b7280",
		Tick:       "#9ca3af",
		Rising:     "#0e7490",
	}
}

// colored returns s rendered in the given hex foreground color.
func colored(hex, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

// renderLogo renders the spaced wordmark for the header line.
func renderLogo() string {
	const text = "TRENDLENS"
	letters := make([]string, 0, len(text))
	for _, r := range text {
		letters = append(letters, string(r))
	}
	return accentStyle.Render(strings.Join(letters, " "))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Documentation", "trendlens.dev/docs", "https://trendlens.dev/docs"},
	{"API status", "status.trendlens.dev", "https://status.trendlens.dev"},
	{"Report an issue", "github.com/trendlens/trendlens/issues", "https://github.com/trendlens/trendlens/issues"},
	{"Website", "trendlens.dev", "https://trendlens.dev"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := renderLogo()
	tagline := dimStyle.Italic(true).Render("Market trends, forecasts and rankings in your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818cf8"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"trendlens", "Open the dashboard (interactive TUI)"},
		{"trendlens whoami", "Show the signed-in account"},
		{"trendlens logout", "Clear the stored session"},
		{"trendlens --version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-22s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-22s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
