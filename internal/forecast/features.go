package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/models"
)

// Detection thresholds. Fixed constants so the same history always
// produces the same labels.
const (
	// seasonalityMinSpanDays is the shortest history that can exhibit
	// an annual cycle worth reporting.
	seasonalityMinSpanDays = 300
	// seasonalityAmplitudeFraction relates the fitted annual component
	// to the mean amount.
	seasonalityAmplitudeFraction = 0.15
	// trendDriftFraction relates total drift across the series to the
	// mean amount.
	trendDriftFraction = 0.1
)

// MonthsDifference returns the number of calendar months touched by
// [start, end]. Day-of-month is ignored: Jan 1 to Mar 31 spans Jan,
// Feb and Mar and returns 3. Never returns less than 1.
func MonthsDifference(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// MonthlyAverage returns the total amount divided by the number of
// calendar months the transactions span. Empty input yields 0.
func MonthlyAverage(txs []models.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	var sum float64
	for _, tx := range txs {
		sum += tx.Amount
	}
	minDate, maxDate := minMaxDates(txs)
	return sum / float64(MonthsDifference(minDate, maxDate))
}

// minMaxDates returns the earliest and latest transaction dates.
func minMaxDates(txs []models.Transaction) (minDate, maxDate time.Time) {
	if len(txs) == 0 {
		return time.Time{}, time.Time{}
	}
	minDate, maxDate = txs[0].Date, txs[0].Date
	for _, tx := range txs {
		if tx.Date.Before(minDate) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
	}
	return minDate, maxDate
}

// Consistency scores how uniform the transaction amounts are as
// 1 - stddev/mean, clamped to [0,1]. A mean of zero means every amount
// is zero (amounts are non-negative), so the series is perfectly
// uniform and scores 1 unless the variance somehow disagrees.
func Consistency(txs []models.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	mean, stddev := amountStats(txs)
	if mean == 0 {
		if stddev == 0 {
			return 1
		}
		return 0
	}
	score := 1 - stddev/mean
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// DetectSeasonality reports whether amounts follow an annual cycle. It
// fits a single sinusoid over day-of-year and compares the fitted
// amplitude against the mean amount. Histories shorter than a
// near-complete cycle always report false.
func DetectSeasonality(txs []models.Transaction) bool {
	if len(txs) < 2 {
		return false
	}
	minDate, maxDate := minMaxDates(txs)
	if maxDate.Sub(minDate) < seasonalityMinSpanDays*24*time.Hour {
		return false
	}

	mean, _ := amountStats(txs)
	if mean <= 0 {
		return false
	}

	var sinSum, cosSum float64
	for _, tx := range txs {
		phase := 2 * math.Pi * float64(tx.Date.YearDay()) / 365.25
		dev := tx.Amount - mean
		sinSum += dev * math.Sin(phase)
		cosSum += dev * math.Cos(phase)
	}
	amplitude := 2 * math.Hypot(sinSum, cosSum) / float64(len(txs))
	return amplitude >= seasonalityAmplitudeFraction*mean
}

// DetectTrend reports whether amounts drift up or down over time. It
// fits a least-squares line over the date-ordered series and compares
// the total drift across the series against a fraction of the mean.
// Flat series report false.
func DetectTrend(txs []models.Transaction) bool {
	if len(txs) < 3 {
		return false
	}
	slope := amountSlope(txs)
	mean, _ := amountStats(txs)
	threshold := trendDriftFraction * math.Abs(mean)
	if threshold == 0 {
		return false
	}
	drift := math.Abs(slope) * float64(len(txs)-1)
	return drift >= threshold
}

// amountSlope fits a least-squares line of amount over the
// date-ordered sequence index and returns its slope.
func amountSlope(txs []models.Transaction) float64 {
	n := len(txs)
	if n < 2 {
		return 0
	}
	ordered := make([]models.Transaction, n)
	copy(ordered, txs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	var sumX, sumY, sumXY, sumXX float64
	for i, tx := range ordered {
		x := float64(i)
		sumX += x
		sumY += tx.Amount
		sumXY += x * tx.Amount
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// amountStats returns the mean and population standard deviation of
// the transaction amounts.
func amountStats(txs []models.Transaction) (mean, stddev float64) {
	n := float64(len(txs))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, tx := range txs {
		sum += tx.Amount
	}
	mean = sum / n
	var variance float64
	for _, tx := range txs {
		dev := tx.Amount - mean
		variance += dev * dev
	}
	variance /= n
	return mean, math.Sqrt(variance)
}

// sanitize replaces NaN and infinities with 0 so every projected field
// stays finite even under degenerate input.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
