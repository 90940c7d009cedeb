package progress

import "math"

const (
	MinScore = 1
	MaxScore = 5
)

// ScoreFields lists the keys of the scoring reply in output order.
var ScoreFields = []string{
	"q1_score",
	"q2_score",
	"q3_score",
	"q4_score",
	"q5_score",
	"q6_score",
	"q7_score",
	"overall_rating",
}

// Scores is the per-question and overall rating returned by the scoring service.
// Values are kept exactly as received.
type Scores struct {
	Q1      float64 `json:"q1_score" mapstructure:"q1_score"`
	Q2      float64 `json:"q2_score" mapstructure:"q2_score"`
	Q3      float64 `json:"q3_score" mapstructure:"q3_score"`
	Q4      float64 `json:"q4_score" mapstructure:"q4_score"`
	Q5      float64 `json:"q5_score" mapstructure:"q5_score"`
	Q6      float64 `json:"q6_score" mapstructure:"q6_score"`
	Q7      float64 `json:"q7_score" mapstructure:"q7_score"`
	Overall float64 `json:"overall_rating" mapstructure:"overall_rating"`
}

// Values returns the scores keyed by ScoreFields.
func (s Scores) Values() map[string]float64 {
	return map[string]float64{
		"q1_score":       s.Q1,
		"q2_score":       s.Q2,
		"q3_score":       s.Q3,
		"q4_score":       s.Q4,
		"q5_score":       s.Q5,
		"q6_score":       s.Q6,
		"q7_score":       s.Q7,
		"overall_rating": s.Overall,
	}
}

// OutOfRange lists the fields that are not whole numbers between MinScore and MaxScore.
func (s Scores) OutOfRange() []string {
	values := s.Values()

	var fields []string
	for _, field := range ScoreFields {
		v := values[field]
		if v < MinScore || v > MaxScore || v != math.Trunc(v) {
			fields = append(fields, field)
		}
	}
	return fields
}
