// Package assessment scores a single respondent's five slider answers with a
// fixed banding rule.
//
// The rule never consults the trained classifier. Its thresholds (mean >= 4,
// mean >= 3) are unrelated to the ordinal sentiment mapping used to build the
// feature matrix, so the same five answers can get a different label here
// than from a model prediction, which also depends on cluster geometry.
package assessment

import (
	"fmt"

	"go-mindfit/types"
)

const (
	MinAnswer = 1
	MaxAnswer = 5
)

// Answers are the five slider questions, each on a 1-5 scale.
type Answers struct {
	Worry                  int `json:"worry" binding:"required"`
	MentalHealthPerception int `json:"mental_health_perception" binding:"required"`
	StressHandling         int `json:"stress_handling" binding:"required"`
	EmotionalRegulation    int `json:"emotional_regulation" binding:"required"`
	DecisionMaking         int `json:"decision_making" binding:"required"`
}

func (a Answers) values() []int {
	return []int{a.Worry, a.MentalHealthPerception, a.StressHandling, a.EmotionalRegulation, a.DecisionMaking}
}

// Result is a label plus what the dashboard shows with it.
type Result struct {
	Label    types.HealthLabel `json:"label"`
	Mean     float64           `json:"mean"`
	Color    string            `json:"color"`
	Guidance string            `json:"guidance"`
}

// Assess bands the arithmetic mean of the five answers: >= 4 is High Health,
// >= 3 is Moderate Health, anything lower Needs Support.
func Assess(worry, mentalHealthPerception, stressHandling, emotionalRegulation, decisionMaking int) types.HealthLabel {
	return Band(mean([]int{worry, mentalHealthPerception, stressHandling, emotionalRegulation, decisionMaking}))
}

// Band maps a mean answer onto the label scale.
func Band(avg float64) types.HealthLabel {
	switch {
	case avg >= 4:
		return types.HighHealth
	case avg >= 3:
		return types.ModerateHealth
	default:
		return types.NeedsSupport
	}
}

// AssessAnswers validates the range of every answer before banding.
func AssessAnswers(a Answers) (Result, error) {
	vals := a.values()
	for i, v := range vals {
		if v < MinAnswer || v > MaxAnswer {
			return Result{}, fmt.Errorf("answer %d is %d, want %d-%d", i+1, v, MinAnswer, MaxAnswer)
		}
	}
	avg := mean(vals)
	label := Band(avg)
	return Result{
		Label:    label,
		Mean:     avg,
		Color:    Color(label),
		Guidance: Guidance(label),
	}, nil
}

// Guidance is the follow-up message shown with a label.
func Guidance(label types.HealthLabel) string {
	switch label {
	case types.NeedsSupport:
		return "Consider seeking additional support or counseling."
	case types.ModerateHealth:
		return "Maintain current wellness practices and monitor mental health regularly."
	default:
		return "Excellent mental health status!"
	}
}

// Color is the display colour of a label.
func Color(label types.HealthLabel) string {
	switch label {
	case types.NeedsSupport:
		return "red"
	case types.ModerateHealth:
		return "orange"
	default:
		return "green"
	}
}

func mean(vals []int) float64 {
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}
