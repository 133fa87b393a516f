// Package compose turns raw API series into chart-ready structures.
// It performs no I/O and is total over well-formed inputs: callers
// reject malformed payloads at the decode boundary before composing.
package compose

import "github.com/trendlens/trendlens/pkg/domain"

// Series is a single-track series for plain historical display.
// Values align index-for-index with Labels.
type Series struct {
	Labels []string
	Values []float64
}

// CompositeSeries is the two-track (historical + forecast) structure
// sharing one label axis. A nil cell marks an absent value. Both tracks
// always have exactly len(Labels) cells so any renderer can zip them.
type CompositeSeries struct {
	Labels     []string
	Historical []*float64
	Forecast   []*float64
}

// BuildHistoricalSeries maps points to (label, value) pairs in input
// order. No reordering, no gap-filling: date ordering is the server's
// contract, and labels are display formatting only.
func BuildHistoricalSeries(points []domain.TrendPoint) Series {
	s := Series{
		Labels: make([]string, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		s.Labels[i] = p.Date.Label()
		s.Values[i] = p.Value
	}
	return s
}

// BuildCompositeSeries joins a historical series and its forecast into
// one two-track chart series. Labels are historical dates then forecast
// dates, in that order, never sorted or deduplicated. Overlapping date
// ranges are an input precondition, not something to silently fix.
//
// The forecast track repeats the final historical value at the last
// historical index so the two lines meet visually. With no historical
// points the forecast track starts at index 0 with no synthetic lead-in;
// with no forecast points the forecast track stays entirely absent.
func BuildCompositeSeries(hist []domain.TrendPoint, fc []domain.ForecastPoint) CompositeSeries {
	n := len(hist) + len(fc)
	cs := CompositeSeries{
		Labels:     make([]string, 0, n),
		Historical: make([]*float64, n),
		Forecast:   make([]*float64, n),
	}
	for i, p := range hist {
		cs.Labels = append(cs.Labels, p.Date.Label())
		v := p.Value
		cs.Historical[i] = &v
	}
	for j, p := range fc {
		cs.Labels = append(cs.Labels, p.Date.Label())
		v := p.Predicted
		cs.Forecast[len(hist)+j] = &v
	}
	if len(hist) > 0 && len(fc) > 0 {
		// Join point: the two tracks meet at the last historical index.
		v := hist[len(hist)-1].Value
		cs.Forecast[len(hist)-1] = &v
	}
	return cs
}

// risingCeiling is the fixed reference ceiling for rescaling rising
// growth magnitudes onto the shared 0-100 bar axis. It is a documented
// scale constant, not derived from the data, so the same input always
// normalizes identically. Growth beyond 50x baseline saturates the bar.
const risingCeiling = 5000

// NormalizeRanking rescales a ranked query's value to a percentage in
// [0, 100]. Top values are already percentages and pass through;
// rising values are unbounded growth magnitudes rescaled against
// risingCeiling. The result is clamped in both cases.
func NormalizeRanking(q domain.RelatedQuery) float64 {
	v := q.Value
	if q.Kind == domain.QueryRising {
		v = v / risingCeiling * 100
	}
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
