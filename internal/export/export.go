// Package export renders composed series to PNG files, the terminal
// client's stand-in for the product's interactive charts.
package export

import (
	"fmt"
	"os"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/trendlens/trendlens/internal/compose"
)

const (
	chartWidth  = 1000
	chartHeight = 400
	maxTicks    = 8
)

// Colors selects the stroke colors for the rendered tracks.
type Colors struct {
	Historical drawing.Color
	Forecast   drawing.Color
}

// Hex parses a "#RRGGBB" color into a drawing color.
func Hex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

// WriteCompositePNG renders the two-track composite series to path.
// Each track is drawn only over the indices where it holds a value, so
// the historical line stops where the dashed forecast line takes over,
// meeting at the join point.
func WriteCompositePNG(cs compose.CompositeSeries, keyword, path string, colors Colors) error {
	if len(cs.Labels) == 0 {
		return fmt.Errorf("export composite: empty series")
	}

	histX, histY := trackPoints(cs.Historical)
	fcX, fcY := trackPoints(cs.Forecast)

	series := make([]chart.Series, 0, 2)
	if len(histX) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Historical",
			XValues: histX,
			YValues: histY,
			Style:   chart.Style{StrokeColor: colors.Historical, StrokeWidth: 2},
		})
	}
	if len(fcX) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Forecast",
			XValues: fcX,
			YValues: fcY,
			Style: chart.Style{
				StrokeColor:     colors.Forecast,
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("export composite: not enough points to draw")
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("Interest forecast: %s", keyword),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Ticks: labelTicks(cs.Labels),
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(cs.Labels) - 1)},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderPNG(ch, path)
}

// WriteSeriesPNG renders a single-track historical series to path.
func WriteSeriesPNG(s compose.Series, keyword, path string, color drawing.Color) error {
	if len(s.Labels) < 2 {
		return fmt.Errorf("export series: not enough points to draw")
	}
	xs := make([]float64, len(s.Values))
	for i := range s.Values {
		xs[i] = float64(i)
	}
	ch := chart.Chart{
		Title:  fmt.Sprintf("Historical interest: %s", keyword),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Ticks: labelTicks(s.Labels),
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(s.Labels) - 1)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Historical",
				XValues: xs,
				YValues: s.Values,
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderPNG(ch, path)
}

// trackPoints collects the present cells of a track as (index, value)
// pairs, dropping the absent ones.
func trackPoints(track []*float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(track))
	ys := make([]float64, 0, len(track))
	for i, v := range track {
		if v == nil {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	return xs, ys
}

// labelTicks samples up to maxTicks evenly spaced date labels.
func labelTicks(labels []string) []chart.Tick {
	step := 1
	if len(labels) > maxTicks {
		step = (len(labels) + maxTicks - 1) / maxTicks
	}
	ticks := make([]chart.Tick, 0, maxTicks+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	last := len(labels) - 1
	if len(ticks) == 0 || ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}

func renderPNG(ch chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close() //nolint:errcheck // write errors surface from Render

	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
