package forecast

import (
	"testing"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	t.Run("in unit interval for any non-empty sample", func(t *testing.T) {
		samples := [][]float64{
			{100},
			{100, 100, 100},
			{10, 5000, 3, 700},
		}
		for _, amounts := range samples {
			h := BuildHistory(txSeries(day(2024, time.January, 1), amounts, models.TransactionIncome))
			score := Accuracy(h)
			assert.Greater(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("longer steady history scores higher", func(t *testing.T) {
		short := make([]float64, 35)
		long := make([]float64, 400)
		for i := range short {
			short[i] = 100
		}
		for i := range long {
			long[i] = 100
		}
		shortScore := Accuracy(BuildHistory(txSeries(day(2024, time.January, 1), short, models.TransactionIncome)))
		longScore := Accuracy(BuildHistory(txSeries(day(2023, time.January, 1), long, models.TransactionIncome)))
		assert.Greater(t, longScore, shortScore)
	})
}

func TestCashFlowConfidence(t *testing.T) {
	t.Run("steady flows score high", func(t *testing.T) {
		flows := make([]models.DailyFlow, 90)
		for i := range flows {
			flows[i] = models.DailyFlow{Inflows: 100, Outflows: 40, NetFlow: 60}
		}
		score := CashFlowConfidence(flows)
		assert.Greater(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.Equal(t, "high", ConfidenceBucket(score))
	})

	t.Run("empty flows stay positive", func(t *testing.T) {
		score := CashFlowConfidence(nil)
		assert.Greater(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})
}

func TestConfidenceBucket(t *testing.T) {
	assert.Equal(t, "high", ConfidenceBucket(0.9))
	assert.Equal(t, "high", ConfidenceBucket(0.75))
	assert.Equal(t, "medium", ConfidenceBucket(0.6))
	assert.Equal(t, "medium", ConfidenceBucket(0.5))
	assert.Equal(t, "low", ConfidenceBucket(0.3))
}

func TestConfidenceBucket_TotalAndMonotonic(t *testing.T) {
	rank := map[string]int{"low": 0, "medium": 1, "high": 2}
	previous := -1
	for score := 0.01; score <= 1.0; score += 0.01 {
		bucket := ConfidenceBucket(score)
		r, known := rank[bucket]
		assert.True(t, known, "unmapped bucket %q for %.2f", bucket, score)
		assert.GreaterOrEqual(t, r, previous)
		previous = r
	}
}
