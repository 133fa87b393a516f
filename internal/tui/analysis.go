package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/trendlens/trendlens/internal/compose"
	"github.com/trendlens/trendlens/pkg/client"
	"github.com/trendlens/trendlens/pkg/domain"
)

const rankBarWidth = 24

type queriesLoadedMsg struct {
	gen     uuid.UUID
	keyword string
	queries *domain.RelatedQueries
	err     error
}

// rankedRow pairs a related query with its normalized bar percentage.
// Normalization is presentation scale only: the raw value still shows.
type rankedRow struct {
	query domain.RelatedQuery
	pct   float64
}

type analysisModel struct {
	client  *client.Client
	keyword string
	editing bool
	loading bool

	gen uuid.UUID

	loadedKeyword string
	top           []rankedRow
	rising        []rankedRow
	cursor        int

	errMsg string
	status string
	dark   bool
	width  int
	height int
}

func newAnalysisModel(c *client.Client, dark bool) analysisModel {
	return analysisModel{client: c, editing: true, dark: dark}
}

func (m analysisModel) Init() tea.Cmd {
	return nil
}

func (m analysisModel) rowCount() int {
	return len(m.top) + len(m.rising)
}

// rowAt flattens the two sections into one cursor space, top first.
func (m analysisModel) rowAt(i int) rankedRow {
	if i < len(m.top) {
		return m.top[i]
	}
	return m.rising[i-len(m.top)]
}

func (m analysisModel) Update(msg tea.Msg) (analysisModel, tea.Cmd) {
	switch msg := msg.(type) {
	case queriesLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = friendlyError(msg.err)
			m.top, m.rising = nil, nil
			m.loadedKeyword = ""
			return m, nil
		}
		m.errMsg = ""
		m.loadedKeyword = msg.keyword
		m.top = rankRows(msg.queries.Top)
		m.rising = rankRows(msg.queries.Rising)
		m.cursor = 0
		m.editing = false
		return m, nil

	case themeChangedMsg:
		m.dark = msg.dark
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m analysisModel) updateKeys(msg tea.KeyMsg) (analysisModel, tea.Cmd) {
	m.status = ""

	if !m.editing {
		switch msg.String() {
		case "i", "/":
			m.editing = true
		case "j", "down":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "y":
			return m.yank()
		case "enter":
			return m.submit()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.editing = false
	case "enter":
		return m.submit()
	case "backspace":
		m.keyword = editRune(m.keyword, "backspace")
	default:
		key := msg.String()
		if len(key) == 1 {
			m.keyword += key
		}
	}
	return m, nil
}

func (m analysisModel) submit() (analysisModel, tea.Cmd) {
	keyword := strings.TrimSpace(m.keyword)
	if keyword == "" {
		m.errMsg = "keyword is required"
		return m, nil
	}
	m.errMsg = ""
	m.loading = true
	m.gen = uuid.New()

	gen := m.gen
	c := m.client
	return m, func() tea.Msg {
		queries, err := c.RelatedQueries(context.Background(), keyword)
		return queriesLoadedMsg{gen: gen, keyword: keyword, queries: queries, err: err}
	}
}

func (m analysisModel) yank() (analysisModel, tea.Cmd) {
	if m.rowCount() == 0 {
		return m, nil
	}
	row := m.rowAt(m.cursor)
	if err := clipboard.WriteAll(row.query.Query); err != nil {
		m.errMsg = "clipboard unavailable"
		return m, nil
	}
	m.status = fmt.Sprintf("copied %q", row.query.Query)
	return m, nil
}

func (m analysisModel) View() string {
	var b strings.Builder
	pal := PaletteFor(m.dark)

	b.WriteString("\n " + renderField("keyword", m.keyword, m.editing, false) + "\n\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("fetching related queries...") + "\n")
		return b.String()
	case m.errMsg != "":
		b.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return b.String()
	case m.loadedKeyword == "":
		b.WriteString(" " + dimStyle.Render("enter a keyword to see its related queries") + "\n")
		return b.String()
	}

	b.WriteString(" " + sectionHeaderStyle.Render("Top queries: "+m.loadedKeyword) + "\n")
	m.renderSection(&b, m.top, 0, pal.Historical)
	b.WriteString("\n " + sectionHeaderStyle.Render("Rising queries") + "\n")
	m.renderSection(&b, m.rising, len(m.top), pal.Rising)

	if m.status != "" {
		b.WriteString("\n " + statusStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m analysisModel) renderSection(b *strings.Builder, rows []rankedRow, offset int, color string) {
	if len(rows) == 0 {
		b.WriteString(" " + dimStyle.Render("none") + "\n")
		return
	}
	for i, row := range rows {
		cursor := " "
		style := normalStyle
		if !m.editing && offset+i == m.cursor {
			cursor = ">"
			style = selectedStyle
		}
		name := fmt.Sprintf("%-28s", truncStr(row.query.Query, 28))
		value := metaStyle.Render(fmt.Sprintf("%6.0f", row.query.Value))
		fmt.Fprintf(b, " %s %s %s %s\n",
			cursor, style.Render(name), value, colored(color, bar(row.pct, rankBarWidth)))
	}
}

func rankRows(queries []domain.RelatedQuery) []rankedRow {
	rows := make([]rankedRow, len(queries))
	for i, q := range queries {
		rows[i] = rankedRow{query: q, pct: compose.NormalizeRanking(q)}
	}
	return rows
}
