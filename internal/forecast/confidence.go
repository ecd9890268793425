package forecast

import (
	"math"

	"github.com/SvetozarP/finance-tracker/internal/models"
)

// Accuracy score weights and confidence bucket cut points. The bucket
// mapping is total over (0,1] and monotonic in the score.
const (
	accuracyBase              = 0.3
	accuracySufficiencyWeight = 0.4
	accuracyConsistencyWeight = 0.3
	sufficiencyFullMonths     = 12
	cashFlowFullDays          = 60

	confidenceHighThreshold   = 0.75
	confidenceMediumThreshold = 0.5
)

// Accuracy scores how much the history can be trusted, in (0,1].
// Longer histories and steadier amounts both raise the score; the base
// term keeps it above zero for any non-empty sample.
func Accuracy(h History) float64 {
	months := MonthsDifference(minMaxDates(h.All))
	sufficiency := math.Min(1, float64(months)/sufficiencyFullMonths)

	var consistency float64
	var sides int
	if len(h.Income) > 0 {
		consistency += Consistency(h.Income)
		sides++
	}
	if len(h.Expenses) > 0 {
		consistency += Consistency(h.Expenses)
		sides++
	}
	if sides > 0 {
		consistency /= float64(sides)
	}

	score := accuracyBase + accuracySufficiencyWeight*sufficiency + accuracyConsistencyWeight*consistency
	return math.Min(1, score)
}

// CashFlowConfidence scores a daily-flow history, in (0,1]. The
// consistency term looks at the spread of absolute daily net flows.
func CashFlowConfidence(flows []models.DailyFlow) float64 {
	sufficiency := math.Min(1, float64(len(flows))/cashFlowFullDays)

	var sum float64
	for _, f := range flows {
		sum += math.Abs(f.NetFlow)
	}
	var consistency float64
	if n := float64(len(flows)); n > 0 && sum > 0 {
		mean := sum / n
		var variance float64
		for _, f := range flows {
			dev := math.Abs(f.NetFlow) - mean
			variance += dev * dev
		}
		consistency = math.Max(0, 1-math.Sqrt(variance/n)/mean)
	} else if sum == 0 {
		consistency = 1
	}

	score := accuracyBase + accuracySufficiencyWeight*sufficiency + accuracyConsistencyWeight*consistency
	return math.Min(1, score)
}

// ConfidenceBucket maps an accuracy score to its categorical summary.
func ConfidenceBucket(accuracy float64) string {
	switch {
	case accuracy >= confidenceHighThreshold:
		return "high"
	case accuracy >= confidenceMediumThreshold:
		return "medium"
	default:
		return "low"
	}
}
