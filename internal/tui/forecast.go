package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/trendlens/trendlens/internal/compose"
	"github.com/trendlens/trendlens/internal/export"
	"github.com/trendlens/trendlens/pkg/client"
	"github.com/trendlens/trendlens/pkg/domain"
)

type forecastField int

const (
	fieldKeyword forecastField = iota
	fieldModel
	fieldPromos
	numForecastFields
)

// forecastLoadedMsg carries one generation's paired fetch result. The
// two requests succeed or fail as a unit: err set means neither series
// is usable, even if one request came back fine.
type forecastLoadedMsg struct {
	gen     uuid.UUID
	keyword string
	hist    []domain.TrendPoint
	fc      []domain.ForecastPoint
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

type forecastModel struct {
	client  *client.Client
	fields  [numForecastFields]string
	focus   forecastField
	editing bool
	loading bool

	// gen tags the in-flight request generation; results carrying a
	// stale tag are dropped on arrival.
	gen uuid.UUID

	keyword   string // keyword of the currently displayed result
	hist      compose.Series
	composite compose.CompositeSeries

	errMsg string
	status string
	dark   bool
	width  int
	height int
}

func newForecastModel(c *client.Client, dark bool) forecastModel {
	m := forecastModel{client: c, editing: true, dark: dark}
	m.fields[fieldModel] = domain.DefaultModel
	return m
}

func (m forecastModel) Init() tea.Cmd {
	return nil
}

func (m forecastModel) Update(msg tea.Msg) (forecastModel, tea.Cmd) {
	switch msg := msg.(type) {
	case forecastLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = friendlyError(msg.err)
			m.keyword = ""
			m.hist = compose.Series{}
			m.composite = compose.CompositeSeries{}
			return m, nil
		}
		m.errMsg = ""
		m.keyword = msg.keyword
		m.hist = compose.BuildHistoricalSeries(msg.hist)
		m.composite = compose.BuildCompositeSeries(msg.hist, msg.fc)
		m.editing = false
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.errMsg = "export failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
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

func (m forecastModel) updateKeys(msg tea.KeyMsg) (forecastModel, tea.Cmd) {
	m.status = ""

	if !m.editing {
		switch msg.String() {
		case "i", "enter":
			m.editing = true
		case "e":
			return m.export()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.editing = false
	case "tab", "down":
		m.focus = (m.focus + 1) % numForecastFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numForecastFields) % numForecastFields
	case "enter":
		return m.submit()
	case "backspace":
		f := &m.fields[m.focus]
		*f = editRune(*f, "backspace")
	default:
		key := msg.String()
		if m.focus == fieldModel {
			// Cycle through models with h/l
			if key == "h" || key == "l" {
				models := domain.ForecastModels
				idx := 0
				for i, name := range models {
					if name == m.fields[fieldModel] {
						idx = i
						break
					}
				}
				if key == "l" {
					idx = (idx + 1) % len(models)
				} else {
					idx = (idx - 1 + len(models)) % len(models)
				}
				m.fields[fieldModel] = models[idx]
				return m, nil
			}
			return m, nil
		}
		if len(key) == 1 {
			m.fields[m.focus] += key
		}
	}
	return m, nil
}

func (m forecastModel) submit() (forecastModel, tea.Cmd) {
	keyword := strings.TrimSpace(m.fields[fieldKeyword])
	if keyword == "" {
		m.errMsg = "keyword is required"
		return m, nil
	}
	model := m.fields[fieldModel]
	if !domain.ValidModel(model) {
		m.errMsg = "unknown model: " + model
		return m, nil
	}
	promos, err := parsePromoDates(m.fields[fieldPromos])
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.loading = true
	m.gen = uuid.New()
	return m, m.fetch(m.gen, keyword, model, promos)
}

// fetch runs the interest and forecast requests concurrently and joins
// them into one message. The first failure cancels the sibling request
// and the generation reports a single error.
func (m forecastModel) fetch(gen uuid.UUID, keyword, model string, promos []domain.Date) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())

		var hist []domain.TrendPoint
		var fc []domain.ForecastPoint
		g.Go(func() error {
			var err error
			hist, err = c.InterestOverTime(ctx, keyword)
			return err
		})
		g.Go(func() error {
			var err error
			fc, err = c.Forecast(ctx, client.ForecastRequest{
				Keyword:        keyword,
				Model:          model,
				PromotionDates: promos,
			})
			return err
		})
		if err := g.Wait(); err != nil {
			return forecastLoadedMsg{gen: gen, err: err}
		}
		return forecastLoadedMsg{gen: gen, keyword: keyword, hist: hist, fc: fc}
	}
}

func (m forecastModel) export() (forecastModel, tea.Cmd) {
	if len(m.composite.Labels) == 0 {
		m.status = "nothing to export yet"
		return m, nil
	}
	cs := m.composite
	keyword := m.keyword
	pal := PaletteFor(m.dark)
	path := fmt.Sprintf("trendlens-%s-%s.png", slug(keyword), time.Now().Format("2006-01-02"))
	return m, func() tea.Msg {
		colors := export.Colors{
			Historical: export.Hex(pal.Historical),
			Forecast:   export.Hex(pal.Forecast),
		}
		err := export.WriteCompositePNG(cs, keyword, path, colors)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m forecastModel) View() string {
	var b strings.Builder
	pal := PaletteFor(m.dark)

	labels := [numForecastFields]string{"keyword", "model", "promotions"}
	b.WriteString("\n")
	for i := forecastField(0); i < numForecastFields; i++ {
		if i == fieldModel {
			cursor := " "
			style := metaStyle
			if m.editing && i == m.focus {
				cursor = ">"
				style = selectedStyle
			}
			fmt.Fprintf(&b, " %s %s: %s  %s\n", cursor, style.Render(labels[i]),
				accentStyle.Render(m.fields[i]), metaStyle.Render("(h/l to cycle)"))
			continue
		}
		focused := m.editing && i == m.focus
		line := renderField(labels[i], m.fields[i], focused, false)
		if i == fieldPromos && m.fields[i] == "" && !focused {
			line = "  " + metaStyle.Render(labels[i]) + ": " + inputPlaceholderStyle.Render("2024-06-01, 2024-07-15 (optional)")
		}
		b.WriteString(" " + line + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("fetching interest and forecast...") + "\n")
	case m.errMsg != "":
		b.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
	case len(m.composite.Labels) > 0:
		b.WriteString(" " + sectionHeaderStyle.Render("Interest over time: "+m.keyword) + "\n")
		b.WriteString(renderSeries(m.hist, m.width, pal))
		b.WriteString("\n")
		b.WriteString(" " + sectionHeaderStyle.Render("Composite forecast") + "\n")
		b.WriteString(renderComposite(m.composite, m.width, pal))
		b.WriteString(" " + colored(pal.Historical, "●") + " " + dimStyle.Render("historical") +
			"   " + colored(pal.Forecast, "●") + " " + dimStyle.Render("forecast") + "\n")
	default:
		b.WriteString(" " + dimStyle.Render("enter a keyword to fetch its trend and forecast") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n " + statusStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// parsePromoDates parses a comma-separated list of promotion dates.
// An empty input is valid and yields no dates.
func parsePromoDates(s string) ([]domain.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	dates := make([]domain.Date, 0, len(parts))
	for _, p := range parts {
		d, err := domain.ParseDate(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad promotion date %q, want YYYY-MM-DD", strings.TrimSpace(p))
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// friendlyError surfaces server detail verbatim and keeps transport
// noise behind a generic message.
func friendlyError(err error) string {
	if detail := client.Detail(err); detail != "" {
		return detail
	}
	return "request failed, is the API reachable?"
}
