package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txSeries(start time.Time, amounts []float64, txType models.TransactionType) []models.Transaction {
	txs := make([]models.Transaction, len(amounts))
	for i, amount := range amounts {
		txs[i] = models.Transaction{
			Amount: amount,
			Date:   start.AddDate(0, 0, i),
			Type:   txType,
		}
	}
	return txs
}

func TestMonthsDifference(t *testing.T) {
	t.Run("ignores day of month", func(t *testing.T) {
		assert.Equal(t, 3, MonthsDifference(day(2024, time.January, 1), day(2024, time.March, 31)))
	})

	t.Run("same month counts as one", func(t *testing.T) {
		assert.Equal(t, 1, MonthsDifference(day(2024, time.June, 1), day(2024, time.June, 30)))
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		assert.Equal(t, 4, MonthsDifference(day(2023, time.November, 15), day(2024, time.February, 2)))
	})

	t.Run("never below one", func(t *testing.T) {
		assert.Equal(t, 1, MonthsDifference(day(2024, time.March, 1), day(2024, time.January, 1)))
	})
}

func TestMonthlyAverage(t *testing.T) {
	t.Run("divides by months spanned", func(t *testing.T) {
		txs := []models.Transaction{
			{Amount: 300, Date: day(2024, time.January, 5), Type: models.TransactionIncome},
			{Amount: 600, Date: day(2024, time.March, 20), Type: models.TransactionIncome},
		}
		// 900 over Jan..Mar
		assert.InDelta(t, 300, MonthlyAverage(txs), 0.001)
	})

	t.Run("empty input yields zero", func(t *testing.T) {
		assert.Zero(t, MonthlyAverage(nil))
	})
}

func TestConsistency(t *testing.T) {
	t.Run("uniform amounts score one", func(t *testing.T) {
		txs := txSeries(day(2024, time.January, 1), []float64{100, 100, 100, 100}, models.TransactionIncome)
		assert.InDelta(t, 1.0, Consistency(txs), 0.001)
	})

	t.Run("stays in unit interval and finite", func(t *testing.T) {
		samples := [][]float64{
			{100, 110, 90, 105, 95},
			{10, 5000, 3, 700, 42},
			{1, 1, 1, 1000000},
		}
		for _, amounts := range samples {
			score := Consistency(txSeries(day(2024, time.January, 1), amounts, models.TransactionExpense))
			assert.False(t, math.IsNaN(score))
			assert.False(t, math.IsInf(score, 0))
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("all zero amounts score one", func(t *testing.T) {
		txs := txSeries(day(2024, time.January, 1), []float64{0, 0, 0}, models.TransactionExpense)
		assert.Equal(t, 1.0, Consistency(txs))
	})

	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Zero(t, Consistency(nil))
	})
}

func TestDetectTrend(t *testing.T) {
	t.Run("monotonic increase is a trend", func(t *testing.T) {
		amounts := make([]float64, 30)
		for i := range amounts {
			amounts[i] = 100 + 2*float64(i)
		}
		assert.True(t, DetectTrend(txSeries(day(2024, time.January, 1), amounts, models.TransactionIncome)))
	})

	t.Run("flat series is not a trend", func(t *testing.T) {
		amounts := make([]float64, 30)
		for i := range amounts {
			amounts[i] = 250
		}
		assert.False(t, DetectTrend(txSeries(day(2024, time.January, 1), amounts, models.TransactionIncome)))
	})

	t.Run("declining amounts are a trend", func(t *testing.T) {
		amounts := make([]float64, 30)
		for i := range amounts {
			amounts[i] = 1000 - 20*float64(i)
		}
		assert.True(t, DetectTrend(txSeries(day(2024, time.January, 1), amounts, models.TransactionIncome)))
	})

	t.Run("too short to call", func(t *testing.T) {
		assert.False(t, DetectTrend(txSeries(day(2024, time.January, 1), []float64{1, 2}, models.TransactionIncome)))
	})
}

func TestDetectSeasonality(t *testing.T) {
	t.Run("annual sinusoid is seasonal", func(t *testing.T) {
		start := day(2023, time.January, 1)
		amounts := make([]float64, 400)
		for i := range amounts {
			doy := float64(start.AddDate(0, 0, i).YearDay())
			amounts[i] = 100 + 80*math.Sin(2*math.Pi*doy/365.25)
		}
		assert.True(t, DetectSeasonality(txSeries(start, amounts, models.TransactionExpense)))
	})

	t.Run("flat year is not seasonal", func(t *testing.T) {
		amounts := make([]float64, 400)
		for i := range amounts {
			amounts[i] = 100
		}
		assert.False(t, DetectSeasonality(txSeries(day(2023, time.January, 1), amounts, models.TransactionExpense)))
	})

	t.Run("short series never reports seasonality", func(t *testing.T) {
		amounts := make([]float64, 60)
		for i := range amounts {
			amounts[i] = 100 + 80*math.Sin(2*math.Pi*float64(i)/30)
		}
		assert.False(t, DetectSeasonality(txSeries(day(2024, time.January, 1), amounts, models.TransactionExpense)))
	})
}

func TestAmountSlope(t *testing.T) {
	txs := txSeries(day(2024, time.January, 1), []float64{100, 102, 104, 106}, models.TransactionIncome)
	require.InDelta(t, 2.0, amountSlope(txs), 0.001)
}
