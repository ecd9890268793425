package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/SvetozarP/finance-tracker/internal/forecast"
	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/lib/pq"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finance.users (username, email, password_hash, base_currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash, user.BaseCurrency).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, base_currency, created_at, updated_at
		FROM finance.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.BaseCurrency, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users, used by the digest scheduler
func (r *Repository) ListUsers() ([]models.User, error) {
	query := `
		SELECT id, username, email, base_currency, created_at, updated_at
		FROM finance.users
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.BaseCurrency, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO finance.accounts (user_id, name, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, account.UserID, account.Name, account.Balance, account.Currency).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// TotalBalance sums balances across a user's accounts. Implements the
// forecast engine's BalanceProvider capability.
func (r *Repository) TotalBalance(ctx context.Context, userID int64) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(balance), 0)
		FROM finance.accounts
		WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum balances: %w", err)
	}
	return total, nil
}

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	query := `
		INSERT INTO finance.transactions (user_id, account_id, category_id, amount, currency, type, description, date, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, tx.UserID, tx.AccountID, tx.CategoryID, tx.Amount, tx.Currency, tx.Type, tx.Description, tx.Date).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction owned by the user
func (r *Repository) DeleteTransaction(userID, transactionID int64) error {
	result, err := r.db.Exec(
		`DELETE FROM finance.transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

// Find retrieves transactions matching the filter. Implements the
// forecast engine's TransactionDataProvider capability; no ordering is
// promised, the engine sorts what it needs itself.
func (r *Repository) Find(ctx context.Context, filter forecast.TransactionFilter) ([]models.Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(filter.Categories) > 0 {
		args = append(args, pq.Array(filter.Categories))
		conditions = append(conditions, fmt.Sprintf("category_id = ANY($%d)", len(args)))
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		args = append(args, pq.Array(types))
		conditions = append(conditions, fmt.Sprintf("type = ANY($%d)", len(args)))
	}
	if len(filter.Accounts) > 0 {
		args = append(args, pq.Array(filter.Accounts))
		conditions = append(conditions, fmt.Sprintf("account_id = ANY($%d)", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, account_id, COALESCE(category_id, ''), amount, currency, type, description, date, created_at, updated_at
		FROM finance.transactions
		WHERE %s`, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.CategoryID, &tx.Amount, &tx.Currency,
			&tx.Type, &tx.Description, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// CreateCategory creates a new category in the database
func (r *Repository) CreateCategory(category *models.Category) error {
	query := `
		INSERT INTO finance.categories (id, user_id, parent_id, name, kind, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(query, category.ID, category.UserID, category.ParentID, category.Name, category.Kind).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories retrieves all categories for a user
func (r *Repository) ListCategories(userID int64) ([]models.Category, error) {
	query := `
		SELECT id, user_id, COALESCE(parent_id, ''), name, kind, created_at, updated_at
		FROM finance.categories
		WHERE user_id = $1
		ORDER BY name`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.ParentID, &c.Name, &c.Kind, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateBudget creates a new budget in the database
func (r *Repository) CreateBudget(budget *models.Budget) error {
	query := `
		INSERT INTO finance.budgets (user_id, category_id, amount, period, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, budget.UserID, budget.CategoryID, budget.Amount, budget.Period, budget.StartDate, budget.EndDate).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListBudgets retrieves all budgets for a user
func (r *Repository) ListBudgets(userID int64) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, amount, period, start_date, end_date, created_at, updated_at
		FROM finance.budgets
		WHERE user_id = $1
		ORDER BY start_date`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
