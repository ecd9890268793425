package models

import "time"

// ForecastQuery describes a forecast or cash-flow prediction request
type ForecastQuery struct {
	UserID           int64             `json:"user_id"`
	StartDate        time.Time         `json:"start_date"`
	EndDate          time.Time         `json:"end_date"`
	Categories       []string          `json:"categories,omitempty"`
	TransactionTypes []TransactionType `json:"transaction_types,omitempty"`
	Accounts         []int64           `json:"accounts,omitempty"`
	IncludeRecurring bool              `json:"include_recurring"`
	// ConfidenceThreshold is in [0,1]; results below it are still
	// returned, the caller decides how to present them.
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	ModelType           string  `json:"model_type,omitempty"`
	// Algorithm, when set to a known label, overrides the automatic
	// method selection.
	Algorithm string `json:"algorithm,omitempty"`
}

// DailyFlow represents aggregated money movement for one calendar date
type DailyFlow struct {
	Date     string  `json:"date"` // Format: YYYY-MM-DD
	Inflows  float64 `json:"inflows"`
	Outflows float64 `json:"outflows"`
	NetFlow  float64 `json:"net_flow"`
}

// Scenario represents one projection band of a forecast
type Scenario struct {
	Name              string  `json:"name"` // optimistic, realistic, pessimistic
	Probability       float64 `json:"probability"`
	ProjectedIncome   float64 `json:"projected_income"`
	ProjectedExpenses float64 `json:"projected_expenses"`
	ProjectedNetWorth float64 `json:"projected_net_worth"`
	ProjectedSavings  float64 `json:"projected_savings"`
	Confidence        string  `json:"confidence"` // high, medium, low
}

// BaseScenario is the central estimate a forecast is built around
type BaseScenario struct {
	ProjectedIncome   float64 `json:"projected_income"`
	ProjectedExpenses float64 `json:"projected_expenses"`
	ProjectedNetWorth float64 `json:"projected_net_worth"`
	ProjectedSavings  float64 `json:"projected_savings"`
	Confidence        string  `json:"confidence"`
}

// CategoryForecast projects a single category over the forecast period
type CategoryForecast struct {
	CategoryID     string  `json:"category_id"`
	Type           string  `json:"type"` // income or expense
	MonthlyAverage float64 `json:"monthly_average"`
	ProjectedTotal float64 `json:"projected_total"`
	Share          float64 `json:"share"` // fraction of the side's total
	HasTrend       bool    `json:"has_trend"`
}

// MonthlyProjection is one month's slice of a forecast
type MonthlyProjection struct {
	Month             string  `json:"month"` // Format: YYYY-MM
	ProjectedIncome   float64 `json:"projected_income"`
	ProjectedExpenses float64 `json:"projected_expenses"`
	ProjectedNet      float64 `json:"projected_net"`
	CumulativeNet     float64 `json:"cumulative_net"`
}

// RiskFactor flags a statistical weakness in the underlying history
type RiskFactor struct {
	Factor   string `json:"factor"`
	Severity string `json:"severity"` // high, medium, low
	Message  string `json:"message"`
}

// Methodology describes how a forecast was produced
type Methodology struct {
	Algorithm string  `json:"algorithm"`
	Accuracy  float64 `json:"accuracy"` // in (0,1]
}

// ForecastPeriod bounds a forecast
type ForecastPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ForecastResult represents a multi-month financial forecast
type ForecastResult struct {
	ForecastPeriod     ForecastPeriod      `json:"forecast_period"`
	BaseScenario       BaseScenario        `json:"base_scenario"`
	Scenarios          []Scenario          `json:"scenarios"`
	CategoryForecasts  []CategoryForecast  `json:"category_forecasts"`
	MonthlyProjections []MonthlyProjection `json:"monthly_projections"`
	RiskFactors        []RiskFactor        `json:"risk_factors"`
	Methodology        Methodology         `json:"methodology"`
}

// CashFlowPredictions holds the headline numbers of a cash-flow prediction
type CashFlowPredictions struct {
	ProjectedInflows       float64 `json:"projected_inflows"`
	ProjectedOutflows      float64 `json:"projected_outflows"`
	ProjectedNetCashFlow   float64 `json:"projected_net_cash_flow"`
	ProjectedEndingBalance float64 `json:"projected_ending_balance"`
	Confidence             string  `json:"confidence"`
}

// CashFlowResult represents a daily-granularity cash-flow prediction
type CashFlowResult struct {
	PredictionPeriod    ForecastPeriod      `json:"prediction_period"`
	CurrentBalance      float64             `json:"current_balance"`
	Predictions         CashFlowPredictions `json:"predictions"`
	MonthlyProjections  []MonthlyProjection `json:"monthly_projections"`
	CategoryProjections []CategoryForecast  `json:"category_projections"`
	RiskFactors         []RiskFactor        `json:"risk_factors"`
	Scenarios           []Scenario          `json:"scenarios"`
	Methodology         Methodology         `json:"methodology"`
}
