package models

// ComplaintRecord is one month of historical complaint volume for an area.
type ComplaintRecord struct {
	Area            string `json:"area"`
	Zone            string `json:"zone"`
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	TotalComplaints int    `json:"total_complaints"`
}

// Before reports whether r is older than other by (year, month).
func (r ComplaintRecord) Before(other ComplaintRecord) bool {
	if r.Year != other.Year {
		return r.Year < other.Year
	}
	return r.Month < other.Month
}

type MatchResult struct {
	Area  string `json:"area"`
	Score int    `json:"score"`
	Found bool   `json:"found"`
}

type MatchOutcome string

const (
	MatchOutcomeMatched      MatchOutcome = "matched"
	MatchOutcomeFallbackArea MatchOutcome = "fallback_area"
)

type PredictionOutcome string

const (
	PredictionOutcomePredicted           PredictionOutcome = "predicted"
	PredictionOutcomeFallbackError       PredictionOutcome = "fallback_error"
	PredictionOutcomeFallbackNonPositive PredictionOutcome = "fallback_non_positive"
)

// Prediction is the /predict payload. The outcome fields stay internal so the
// wire shape is flat.
type Prediction struct {
	Zone               string `json:"zone"`
	Area               string `json:"area"`
	TotalComplaints    int    `json:"total_complaints"`
	ResolvedComplaints int    `json:"resolved_complaints"`
	PendingComplaints  int    `json:"pending_complaints"`
	MatchScore         int    `json:"match_score"`

	MatchOutcome      MatchOutcome      `json:"-"`
	PredictionOutcome PredictionOutcome `json:"-"`
	RawPrediction     float64           `json:"-"`
}

func (p Prediction) FellBack() bool {
	return p.PredictionOutcome != PredictionOutcomePredicted
}
