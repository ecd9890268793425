package forecast

import (
	"context"
	"sort"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/models"
)

// minHistoryDays is the minimum-history policy: forecasts refuse to
// run on fewer distinct calendar days of history.
const minHistoryDays = 30

const dayFormat = "2006-01-02"

// TransactionFilter narrows the history fetched for a forecast.
type TransactionFilter struct {
	UserID     int64
	From       time.Time
	To         time.Time
	Categories []string
	Types      []models.TransactionType
	Accounts   []int64
}

// TransactionDataProvider supplies transaction history. The engine
// assumes no ordering and sorts what it needs itself.
type TransactionDataProvider interface {
	Find(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
}

// BalanceProvider supplies a user's current total balance for
// cash-flow predictions.
type BalanceProvider interface {
	TotalBalance(ctx context.Context, userID int64) (float64, error)
}

// History is the aggregated view of a user's fetched transactions.
// Transfers and adjustments stay in All but are excluded from the
// income/expense partitions used by trend math.
type History struct {
	All          []models.Transaction
	Income       []models.Transaction
	Expenses     []models.Transaction
	DistinctDays int
}

// BuildHistory partitions fetched transactions and counts the distinct
// calendar days they cover.
func BuildHistory(txs []models.Transaction) History {
	h := History{All: txs}
	days := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		days[tx.Date.Format(dayFormat)] = struct{}{}
		switch tx.Type {
		case models.TransactionIncome:
			h.Income = append(h.Income, tx)
		case models.TransactionExpense:
			h.Expenses = append(h.Expenses, tx)
		}
	}
	h.DistinctDays = len(days)
	return h
}

// CheckMinimum enforces the minimum-history policy before any
// statistics run, with the caller's fixed message.
func (h History) CheckMinimum(message string) error {
	if h.DistinctDays < minHistoryDays {
		return &InsufficientDataError{Message: message, DistinctDays: h.DistinctDays}
	}
	return nil
}

// GroupTransactionsByDate buckets transactions into one DailyFlow per
// distinct calendar date, ascending. Income sums into inflows, expenses
// into outflows; a date with only one side leaves the other at 0.
func GroupTransactionsByDate(txs []models.Transaction) []models.DailyFlow {
	byDate := make(map[string]*models.DailyFlow)
	for _, tx := range txs {
		day := tx.Date.Format(dayFormat)
		flow, ok := byDate[day]
		if !ok {
			flow = &models.DailyFlow{Date: day}
			byDate[day] = flow
		}
		switch tx.Type {
		case models.TransactionIncome:
			flow.Inflows += tx.Amount
		case models.TransactionExpense:
			flow.Outflows += tx.Amount
		}
	}

	flows := make([]models.DailyFlow, 0, len(byDate))
	for _, flow := range byDate {
		flow.NetFlow = flow.Inflows - flow.Outflows
		flows = append(flows, *flow)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Date < flows[j].Date })
	return flows
}
