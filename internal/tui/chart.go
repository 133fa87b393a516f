package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/trendlens/trendlens/internal/compose"
)

const (
	chartRows    = 10
	chartMaxCols = 72
	chartGutter  = 7 // width of the y-axis label column, "%5.0f │"
)

// renderSeries plots a single-track series as a dot grid, one column
// per sampled point.
func renderSeries(s compose.Series, width int, pal ChartPalette) string {
	track := make([]*float64, len(s.Values))
	for i := range s.Values {
		v := s.Values[i]
		track[i] = &v
	}
	return plot(s.Labels, [][]*float64{track}, []string{pal.Historical}, width, pal)
}

// renderComposite plots the two-track composite series. The forecast
// track draws over the historical one, so the shared join point shows
// in the forecast color.
func renderComposite(cs compose.CompositeSeries, width int, pal ChartPalette) string {
	return plot(cs.Labels,
		[][]*float64{cs.Historical, cs.Forecast},
		[]string{pal.Historical, pal.Forecast},
		width, pal)
}

// plot renders tracks sharing one label axis. Tracks are drawn in
// order; absent cells leave the column empty for that track.
func plot(labels []string, tracks [][]*float64, colors []string, width int, pal ChartPalette) string {
	n := len(labels)
	if n == 0 {
		return " " + dimStyle.Render("no data")
	}

	cols := width - chartGutter - 2
	if cols > chartMaxCols {
		cols = chartMaxCols
	}
	if cols < 16 {
		cols = 16
	}
	idxs := sampleIndices(n, cols)

	lo, hi, any := trackBounds(tracks)
	if !any {
		return " " + dimStyle.Render("no data")
	}
	if hi == lo {
		hi = lo + 1
	}

	// owner[row][col] is the index of the track drawn there, or -1.
	owner := make([][]int, chartRows)
	for r := range owner {
		owner[r] = make([]int, len(idxs))
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}
	for ti, track := range tracks {
		for c, i := range idxs {
			v := track[i]
			if v == nil {
				continue
			}
			frac := (*v - lo) / (hi - lo)
			row := chartRows - 1 - int(math.Round(frac*float64(chartRows-1)))
			owner[row][c] = ti
		}
	}

	var b strings.Builder
	for r := 0; r < chartRows; r++ {
		switch r {
		case 0:
			fmt.Fprintf(&b, " %s", colored(pal.Tick, fmt.Sprintf("%5.0f", hi)))
		case chartRows - 1:
			fmt.Fprintf(&b, " %s", colored(pal.Tick, fmt.Sprintf("%5.0f", lo)))
		default:
			b.WriteString(strings.Repeat(" ", 6))
		}
		b.WriteString(colored(pal.Tick, "│"))
		for c := range idxs {
			if ti := owner[r][c]; ti >= 0 {
				b.WriteString(colored(colors[ti], "●"))
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", 6))
	b.WriteString(colored(pal.Tick, "└"+strings.Repeat("─", len(idxs))))
	b.WriteString("\n")

	first, last := labels[idxs[0]], labels[idxs[len(idxs)-1]]
	gap := len(idxs) - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", 7))
	b.WriteString(colored(pal.Tick, first+strings.Repeat(" ", gap)+last))
	b.WriteString("\n")

	return b.String()
}

// sampleIndices picks up to cols indices from 0..n-1, evenly strided,
// always keeping the last index.
func sampleIndices(n, cols int) []int {
	if n <= cols {
		idxs := make([]int, n)
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}
	step := float64(n-1) / float64(cols-1)
	idxs := make([]int, cols)
	for i := 0; i < cols; i++ {
		idxs[i] = int(math.Round(float64(i) * step))
	}
	idxs[cols-1] = n - 1
	return idxs
}

// trackBounds finds the min and max over all present cells.
func trackBounds(tracks [][]*float64) (lo, hi float64, any bool) {
	for _, track := range tracks {
		for _, v := range track {
			if v == nil {
				continue
			}
			if !any {
				lo, hi, any = *v, *v, true
				continue
			}
			if *v < lo {
				lo = *v
			}
			if *v > hi {
				hi = *v
			}
		}
	}
	return lo, hi, any
}

// bar renders a filled progress bar for a 0-100 percentage.
func bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct/100*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
