package models

import "time"

// TransactionType classifies a transaction for aggregation purposes.
type TransactionType string

const (
	TransactionIncome     TransactionType = "income"
	TransactionExpense    TransactionType = "expense"
	TransactionTransfer   TransactionType = "transfer"
	TransactionAdjustment TransactionType = "adjustment"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	AccountID   int64           `json:"account_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}
