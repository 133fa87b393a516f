package domain

// TrendPoint is one sample of historical search interest for a keyword.
type TrendPoint struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

// ForecastPoint is one predicted sample from the forecast endpoint.
// The wire names follow the forecasting service's conventions.
type ForecastPoint struct {
	Date      Date    `json:"ds"`
	Predicted float64 `json:"yhat"`
}

// QueryKind distinguishes the two related-query rankings.
type QueryKind string

const (
	// QueryTop values are already 0-100 scaled percentages.
	QueryTop QueryKind = "top"
	// QueryRising values are unbounded growth magnitudes.
	QueryRising QueryKind = "rising"
)

// RelatedQuery is one ranked query related to the searched keyword.
// Kind is stamped client-side from which ranking list the entry came in.
type RelatedQuery struct {
	Query string    `json:"query"`
	Value float64   `json:"value"`
	Kind  QueryKind `json:"kind,omitempty"`
}

// RelatedQueries groups the two rankings returned for a keyword.
type RelatedQueries struct {
	Top    []RelatedQuery `json:"top"`
	Rising []RelatedQuery `json:"rising"`
}

// KPIReport is the dashboard summary record.
// The optional fields are absent until at least one keyword was tracked.
type KPIReport struct {
	TotalKeywords int      `json:"total_keywords_tracked"`
	TopKeyword    string   `json:"highest_interest_keyword,omitempty"`
	TopValue      *float64 `json:"highest_interest_value,omitempty"`
	LastPeakDate  *Date    `json:"most_recent_peak_date,omitempty"`
}

// ForecastModels lists the forecasting models the API accepts,
// in display order. The first entry is the default.
var ForecastModels = []string{"prophet", "xgboost"}

// DefaultModel is the recommended forecasting model.
const DefaultModel = "prophet"

// ValidModel returns true if the given model name is accepted by the API.
func ValidModel(model string) bool {
	for _, m := range ForecastModels {
		if m == model {
			return true
		}
	}
	return false
}
