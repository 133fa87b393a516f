package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/trendlens/trendlens/pkg/domain"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestForecastModel() forecastModel {
	m := newForecastModel(nil, true)
	m.width = 80
	m.height = 24
	return m
}

func sampleResult(gen uuid.UUID, keyword string) forecastLoadedMsg {
	return forecastLoadedMsg{
		gen:     gen,
		keyword: keyword,
		hist: []domain.TrendPoint{
			{Date: domain.NewDate(2024, time.January, 1), Value: 40},
			{Date: domain.NewDate(2024, time.January, 8), Value: 60},
		},
		fc: []domain.ForecastPoint{
			{Date: domain.NewDate(2024, time.January, 15), Predicted: 70},
			{Date: domain.NewDate(2024, time.January, 22), Predicted: 75},
		},
	}
}

func TestForecastSubmitRequiresKeyword(t *testing.T) {
	m := newTestForecastModel()
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("expected no fetch without a keyword")
	}
	if !strings.Contains(m.View(), "keyword is required") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestForecastSubmitStartsFetch(t *testing.T) {
	m := newTestForecastModel()
	for _, r := range "vinyl" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	if !m.loading {
		t.Error("expected loading state after submit")
	}
	if m.gen == (uuid.UUID{}) {
		t.Error("expected a fresh generation tag")
	}
}

func TestForecastLoadedBuildsBothCharts(t *testing.T) {
	m := newTestForecastModel()
	m.gen = uuid.New()
	m, _ = m.Update(sampleResult(m.gen, "vinyl"))

	if len(m.composite.Labels) != 4 {
		t.Fatalf("composite labels = %d, want 4", len(m.composite.Labels))
	}
	view := m.View()
	if !strings.Contains(view, "Interest over time: vinyl") {
		t.Errorf("expected historical section, got:\n%s", view)
	}
	if !strings.Contains(view, "Composite forecast") {
		t.Errorf("expected composite section, got:\n%s", view)
	}
}

func TestForecastPartialFailureShowsSingleError(t *testing.T) {
	m := newTestForecastModel()
	m.gen = uuid.New()
	m, _ = m.Update(forecastLoadedMsg{gen: m.gen, err: errors.New("connection refused")})

	if len(m.composite.Labels) != 0 {
		t.Error("no chart may render when the pair failed")
	}
	view := m.View()
	if strings.Count(view, "request failed") != 1 {
		t.Errorf("expected exactly one error message, got:\n%s", view)
	}
	if strings.Contains(view, "Composite forecast") {
		t.Errorf("expected no chart sections on failure, got:\n%s", view)
	}
}

func TestForecastStaleGenerationDropped(t *testing.T) {
	m := newTestForecastModel()
	m.gen = uuid.New()
	current := sampleResult(m.gen, "current")
	m, _ = m.Update(current)

	stale := sampleResult(uuid.New(), "stale")
	m, _ = m.Update(stale)

	if m.keyword != "current" {
		t.Errorf("stale result overwrote the display: keyword = %q", m.keyword)
	}
}

func TestForecastErrorResultClearsPreviousChart(t *testing.T) {
	m := newTestForecastModel()
	m.gen = uuid.New()
	m, _ = m.Update(sampleResult(m.gen, "vinyl"))

	m.gen = uuid.New()
	m, _ = m.Update(forecastLoadedMsg{gen: m.gen, err: errors.New("boom")})
	if len(m.composite.Labels) != 0 || m.keyword != "" {
		t.Error("a failed refresh must not keep showing the old result as current")
	}
}

func TestForecastModelCycling(t *testing.T) {
	m := newTestForecastModel()
	m.focus = fieldModel
	m, _ = m.Update(keyMsg("l"))
	if m.fields[fieldModel] != "xgboost" {
		t.Errorf("model after 'l' = %q, want xgboost", m.fields[fieldModel])
	}
	m, _ = m.Update(keyMsg("l"))
	if m.fields[fieldModel] != domain.DefaultModel {
		t.Errorf("model after wrap = %q, want %q", m.fields[fieldModel], domain.DefaultModel)
	}
}

func TestForecastBadPromotionDateRejected(t *testing.T) {
	m := newTestForecastModel()
	m.fields[fieldKeyword] = "vinyl"
	m.fields[fieldPromos] = "2024-13-99"
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("expected no fetch with a bad promotion date")
	}
	if !strings.Contains(m.errMsg, "bad promotion date") {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestParsePromoDates(t *testing.T) {
	dates, err := parsePromoDates(" 2024-06-01, 2024-07-15 ")
	if err != nil {
		t.Fatalf("parsePromoDates() error: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want 2", len(dates))
	}
	if dates[0].Label() != "2024-06-01" {
		t.Errorf("dates[0] = %q", dates[0].Label())
	}

	if dates, err := parsePromoDates(""); err != nil || dates != nil {
		t.Error("empty input must parse to no dates")
	}
}

func TestForecastExportWithoutDataIsNoop(t *testing.T) {
	m := newTestForecastModel()
	m.editing = false
	m, cmd := m.Update(keyMsg("e"))
	if cmd != nil {
		t.Fatal("expected no export command without a composite")
	}
	if !strings.Contains(m.View(), "nothing to export") {
		t.Errorf("expected export notice, got:\n%s", m.View())
	}
}

func TestForecastThemeChangeKeepsData(t *testing.T) {
	m := newTestForecastModel()
	m.gen = uuid.New()
	m, _ = m.Update(sampleResult(m.gen, "vinyl"))

	m, _ = m.Update(themeChangedMsg{dark: false})
	if m.dark {
		t.Error("expected dark=false after theme change")
	}
	if len(m.composite.Labels) != 4 {
		t.Error("theme change must not touch the composed series")
	}
}
