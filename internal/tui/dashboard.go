package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trendlens/trendlens/pkg/client"
	"github.com/trendlens/trendlens/pkg/domain"
)

type kpisLoadedMsg struct {
	report *domain.KPIReport
	err    error
}

type dashboardModel struct {
	client  *client.Client
	subject string
	report  *domain.KPIReport
	loading bool
	errMsg  string
	width   int
	height  int
}

func newDashboardModel(c *client.Client, subject string) dashboardModel {
	return dashboardModel{client: c, subject: subject}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		report, err := c.DashboardKPIs(context.Background())
		return kpisLoadedMsg{report: report, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case kpisLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.report = msg.report
			m.errMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.load()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	greeting := "Welcome back"
	if m.subject != "" {
		greeting += ", " + localPart(m.subject)
	}
	b.WriteString("\n " + normalStyle.Render(greeting) + "\n\n")

	switch {
	case m.loading && m.report == nil:
		b.WriteString(" " + dimStyle.Render("loading dashboard...") + "\n")
		return b.String()
	case m.errMsg != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.errMsg) + "\n")
		b.WriteString(" " + dimStyle.Render("r to retry") + "\n")
		return b.String()
	case m.report == nil:
		b.WriteString(" " + dimStyle.Render("no dashboard data yet") + "\n")
		return b.String()
	}

	r := m.report
	topValue := "n/a"
	if r.TopValue != nil {
		topValue = fmt.Sprintf("%.0f", *r.TopValue)
	}
	topKeyword := r.TopKeyword
	if topKeyword == "" {
		topKeyword = "n/a"
	}
	lastPeak := "n/a"
	if r.LastPeakDate != nil {
		lastPeak = r.LastPeakDate.Label()
	}

	cards := []struct{ title, value, note string }{
		{"Tracked keywords", fmt.Sprintf("%d", r.TotalKeywords), ""},
		{"Top keyword", truncStr(topKeyword, 16), "peak " + topValue},
		{"Most recent peak", lastPeak, ""},
		{"Active users", "1", "coming soon"},
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		note := c.note
		if note == "" {
			note = " "
		}
		content := cardTitleStyle.Render(c.title) + "\n" +
			cardValueStyle.Render(c.value) + "\n" +
			metaStyle.Render(note)
		rendered = append(rendered, cardStyle.Render(content))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n\n " + dimStyle.Render("r refresh") + "\n")
	return b.String()
}
