package forecast

import (
	"context"
	"sort"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

// Engine turns raw transaction history into forecasts and cash-flow
// predictions. Each call is a stateless transform over the fetched
// sample: nothing is cached or persisted between invocations.
type Engine struct {
	provider TransactionDataProvider
	balances BalanceProvider
	log      *logrus.Logger
}

// NewEngine initializes a new forecasting engine
func NewEngine(provider TransactionDataProvider, balances BalanceProvider, log *logrus.Logger) *Engine {
	return &Engine{provider: provider, balances: balances, log: log}
}

// GenerateFinancialForecast builds a multi-month forecast for the
// period in the query. Fails with a ValidationError before fetching
// anything when the dates are malformed, and with an
// InsufficientDataError when the history covers fewer than 30 days.
func (e *Engine) GenerateFinancialForecast(ctx context.Context, query models.ForecastQuery) (*models.ForecastResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	txs, err := e.provider.Find(ctx, filterFromQuery(query))
	if err != nil {
		return nil, err
	}
	h := BuildHistory(txs)
	if err := h.CheckMinimum(MsgInsufficientForecastData); err != nil {
		return nil, err
	}

	months := MonthsDifference(query.StartDate, query.EndDate)
	monthlyIncome := MonthlyAverage(h.Income)
	monthlyExpense := MonthlyAverage(h.Expenses)
	hasSeasonality := DetectSeasonality(h.All)
	hasTrend := DetectTrend(h.All)
	algorithm := SelectAlgorithm(hasSeasonality, hasTrend, len(h.All))
	if requested, ok := ParseAlgorithm(query.Algorithm); ok {
		algorithm = requested
	}
	accuracy := Accuracy(h)
	confidence := ConfidenceBucket(accuracy)

	base := BuildBaseScenario(monthlyIncome, monthlyExpense, months, confidence)
	result := &models.ForecastResult{
		ForecastPeriod:     models.ForecastPeriod{StartDate: query.StartDate, EndDate: query.EndDate},
		BaseScenario:       base,
		Scenarios:          BuildScenarios(base),
		CategoryForecasts:  categoryForecasts(h, months),
		MonthlyProjections: monthlyProjections(query.StartDate, query.EndDate, monthlyIncome, monthlyExpense),
		RiskFactors:        AnalyzeRiskFactors(h),
		Methodology:        models.Methodology{Algorithm: string(algorithm), Accuracy: accuracy},
	}

	e.log.Infof("Forecast generated for user %d: %d months, algorithm %s, accuracy %.2f",
		query.UserID, months, algorithm, accuracy)
	return result, nil
}

// GenerateCashFlowPrediction is the daily-granularity sibling of
// GenerateFinancialForecast: it extrapolates historical daily averages
// over the requested horizon and anchors them to the current balance.
func (e *Engine) GenerateCashFlowPrediction(ctx context.Context, query models.ForecastQuery) (*models.CashFlowResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	txs, err := e.provider.Find(ctx, filterFromQuery(query))
	if err != nil {
		return nil, err
	}
	h := BuildHistory(txs)
	if err := h.CheckMinimum(MsgInsufficientCashFlowData); err != nil {
		return nil, err
	}

	flows := GroupTransactionsByDate(h.All)
	var totalIn, totalOut float64
	for _, f := range flows {
		totalIn += f.Inflows
		totalOut += f.Outflows
	}
	days := float64(h.DistinctDays)
	avgIn := totalIn / days
	avgOut := totalOut / days

	horizon := horizonDays(query.StartDate, query.EndDate)
	projectedIn := sanitize(avgIn * float64(horizon))
	projectedOut := sanitize(avgOut * float64(horizon))
	net := sanitize(projectedIn - projectedOut)

	var balance float64
	if e.balances != nil {
		balance, err = e.balances.TotalBalance(ctx, query.UserID)
		if err != nil {
			return nil, err
		}
	}

	score := CashFlowConfidence(flows)
	confidence := ConfidenceBucket(score)
	algorithm := SelectAlgorithm(DetectSeasonality(h.All), DetectTrend(h.All), len(h.All))

	base := models.BaseScenario{
		ProjectedIncome:   projectedIn,
		ProjectedExpenses: projectedOut,
		ProjectedNetWorth: sanitize(balance + net),
		ProjectedSavings:  net,
		Confidence:        confidence,
	}
	result := &models.CashFlowResult{
		PredictionPeriod: models.ForecastPeriod{StartDate: query.StartDate, EndDate: query.EndDate},
		CurrentBalance:   balance,
		Predictions: models.CashFlowPredictions{
			ProjectedInflows:       projectedIn,
			ProjectedOutflows:      projectedOut,
			ProjectedNetCashFlow:   net,
			ProjectedEndingBalance: sanitize(balance + net),
			Confidence:             confidence,
		},
		MonthlyProjections:  dailyMonthlyProjections(query.StartDate, query.EndDate, avgIn, avgOut),
		CategoryProjections: categoryForecasts(h, MonthsDifference(query.StartDate, query.EndDate)),
		RiskFactors:         AnalyzeRiskFactors(h),
		Scenarios:           BuildScenarios(base),
		Methodology:         models.Methodology{Algorithm: string(algorithm), Accuracy: score},
	}

	e.log.Infof("Cash flow prediction generated for user %d: %d days, confidence %s",
		query.UserID, horizon, confidence)
	return result, nil
}

func validateQuery(q models.ForecastQuery) error {
	if q.StartDate.IsZero() {
		return &ValidationError{Field: "start_date", Message: "start_date is required"}
	}
	if q.EndDate.IsZero() {
		return &ValidationError{Field: "end_date", Message: "end_date is required"}
	}
	if !q.StartDate.Before(q.EndDate) {
		return &ValidationError{Field: "end_date", Message: "start_date must be before end_date"}
	}
	return nil
}

func filterFromQuery(q models.ForecastQuery) TransactionFilter {
	return TransactionFilter{
		UserID:     q.UserID,
		From:       q.StartDate,
		To:         q.EndDate,
		Categories: q.Categories,
		Types:      q.TransactionTypes,
		Accounts:   q.Accounts,
	}
}

// horizonDays counts the calendar days the prediction extrapolates
// over, never less than 1.
func horizonDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// categoryForecasts projects each category over the period using the
// same averaging logic as the base scenario, restricted to that
// category's transactions. Uncategorized spending gets its own bucket.
func categoryForecasts(h History, months int) []models.CategoryForecast {
	forecasts := sideCategoryForecasts(h.Income, "income", months)
	forecasts = append(forecasts, sideCategoryForecasts(h.Expenses, "expense", months)...)
	return forecasts
}

func sideCategoryForecasts(txs []models.Transaction, side string, months int) []models.CategoryForecast {
	byCategory := make(map[string][]models.Transaction)
	var sideTotal float64
	for _, tx := range txs {
		id := tx.CategoryID
		if id == "" {
			id = "uncategorized"
		}
		byCategory[id] = append(byCategory[id], tx)
		sideTotal += tx.Amount
	}

	forecasts := make([]models.CategoryForecast, 0, len(byCategory))
	for id, catTxs := range byCategory {
		var catTotal float64
		for _, tx := range catTxs {
			catTotal += tx.Amount
		}
		avg := MonthlyAverage(catTxs)
		var share float64
		if sideTotal > 0 {
			share = catTotal / sideTotal
		}
		forecasts = append(forecasts, models.CategoryForecast{
			CategoryID:     id,
			Type:           side,
			MonthlyAverage: sanitize(avg),
			ProjectedTotal: sanitize(avg * float64(months)),
			Share:          sanitize(share),
			HasTrend:       DetectTrend(catTxs),
		})
	}
	sort.Slice(forecasts, func(i, j int) bool {
		if forecasts[i].ProjectedTotal != forecasts[j].ProjectedTotal {
			return forecasts[i].ProjectedTotal > forecasts[j].ProjectedTotal
		}
		return forecasts[i].CategoryID < forecasts[j].CategoryID
	})
	return forecasts
}

// monthlyProjections spreads the monthly averages over each calendar
// month the period touches.
func monthlyProjections(start, end time.Time, monthlyIncome, monthlyExpense float64) []models.MonthlyProjection {
	projections := []models.MonthlyProjection{}
	var cumulative float64
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		income := sanitize(monthlyIncome)
		expenses := sanitize(monthlyExpense)
		net := sanitize(income - expenses)
		cumulative = sanitize(cumulative + net)
		projections = append(projections, models.MonthlyProjection{
			Month:             cursor.Format("2006-01"),
			ProjectedIncome:   income,
			ProjectedExpenses: expenses,
			ProjectedNet:      net,
			CumulativeNet:     cumulative,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return projections
}

// dailyMonthlyProjections scales the daily averages by the number of
// period days falling inside each calendar month.
func dailyMonthlyProjections(start, end time.Time, avgIn, avgOut float64) []models.MonthlyProjection {
	projections := []models.MonthlyProjection{}
	var cumulative float64
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		monthEnd := cursor.AddDate(0, 1, -1)
		lo := cursor
		if start.After(lo) {
			lo = start
		}
		hi := monthEnd
		if end.Before(hi) {
			hi = end
		}
		days := int(hi.Sub(lo).Hours()/24) + 1
		if days < 0 {
			days = 0
		}

		income := sanitize(avgIn * float64(days))
		expenses := sanitize(avgOut * float64(days))
		net := sanitize(income - expenses)
		cumulative = sanitize(cumulative + net)
		projections = append(projections, models.MonthlyProjection{
			Month:             cursor.Format("2006-01"),
			ProjectedIncome:   income,
			ProjectedExpenses: expenses,
			ProjectedNet:      net,
			CumulativeNet:     cumulative,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return projections
}
