package forecast

import (
	"sort"

	"github.com/SvetozarP/finance-tracker/internal/models"
)

// Risk thresholds over the [0,1] consistency scale and category share.
const (
	volatilityThreshold     = 0.5
	severeVolatility        = 0.25
	concentrationThreshold  = 0.5
	minConcentrationSamples = 2
)

// AnalyzeRiskFactors flags statistical weaknesses in the history. The
// result may be empty but is never nil.
func AnalyzeRiskFactors(h History) []models.RiskFactor {
	factors := []models.RiskFactor{}

	if len(h.Income) > 0 {
		if c := Consistency(h.Income); c < volatilityThreshold {
			factors = append(factors, models.RiskFactor{
				Factor:   "income_volatility",
				Severity: volatilitySeverity(c),
				Message:  "Income amounts vary significantly across the analyzed period.",
			})
		}
	}
	if len(h.Expenses) > 0 {
		if c := Consistency(h.Expenses); c < volatilityThreshold {
			factors = append(factors, models.RiskFactor{
				Factor:   "expense_volatility",
				Severity: volatilitySeverity(c),
				Message:  "Expense amounts vary significantly across the analyzed period.",
			})
		}
	}

	if share, categoryID, ok := topExpenseShare(h.Expenses); ok && share > concentrationThreshold {
		factors = append(factors, models.RiskFactor{
			Factor:   "expense_concentration",
			Severity: "medium",
			Message:  "Most spending is concentrated in category " + categoryID + ".",
		})
	}

	if len(h.Income) >= 3 && amountSlope(h.Income) < 0 && DetectTrend(h.Income) {
		factors = append(factors, models.RiskFactor{
			Factor:   "income_decline",
			Severity: "high",
			Message:  "Income shows a declining trend over the analyzed period.",
		})
	}

	return factors
}

func volatilitySeverity(consistency float64) string {
	if consistency < severeVolatility {
		return "high"
	}
	return "medium"
}

// topExpenseShare returns the share of total expenses held by the
// largest category. Uncategorized spending counts as its own bucket.
func topExpenseShare(expenses []models.Transaction) (share float64, categoryID string, ok bool) {
	if len(expenses) < minConcentrationSamples {
		return 0, "", false
	}
	totals := make(map[string]float64)
	var total float64
	for _, tx := range expenses {
		id := tx.CategoryID
		if id == "" {
			id = "uncategorized"
		}
		totals[id] += tx.Amount
		total += tx.Amount
	}
	if total == 0 || len(totals) < 2 {
		return 0, "", false
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var largest float64
	for _, id := range ids {
		if totals[id] > largest {
			largest = totals[id]
			categoryID = id
		}
	}
	return largest / total, categoryID, true
}
