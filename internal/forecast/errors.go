package forecast

// Fixed user-facing messages for the minimum-history gate. Controllers
// surface these verbatim.
const (
	MsgInsufficientForecastData = "Insufficient historical data for accurate forecasting. Need at least 30 days of data."
	MsgInsufficientCashFlowData = "Insufficient historical data for accurate cash flow prediction. Need at least 30 days of data."
)

// ValidationError reports a malformed query, detected before any data
// is fetched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientDataError reports that the fetched history does not cover
// the minimum number of days required for a forecast.
type InsufficientDataError struct {
	Message      string
	DistinctDays int
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}
