package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/config"
	"github.com/SvetozarP/finance-tracker/internal/forecast"
	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/SvetozarP/finance-tracker/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// CurrencyConverter translates amounts between currencies.
type CurrencyConverter interface {
	Convert(amount float64, from, to string) (float64, error)
}

// Service handles business logic
type Service struct {
	repo      *repository.Repository
	engine    *forecast.Engine
	converter CurrencyConverter
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, engine *forecast.Engine, converter CurrencyConverter, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, engine: engine, converter: converter, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password, baseCurrency string) (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if baseCurrency == "" {
		baseCurrency = s.config.BaseCurrency
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		BaseCurrency: baseCurrency,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CreateAccount creates a new account for the authenticated user
func (s *Service) CreateAccount(ctx context.Context, name, currency string) (*models.Account, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if currency == "" {
		currency = s.config.BaseCurrency
	}
	account := &models.Account{
		UserID:   userID,
		Name:     name,
		Balance:  0.0,
		Currency: currency,
	}

	if err := s.repo.CreateAccount(account); err != nil {
		return nil, err
	}

	s.log.Infof("Account created for user %d: %s", userID, account.Name)
	return account, nil
}

// CreateTransaction records a transaction, converting foreign-currency
// amounts into the base currency first.
func (s *Service) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tx.UserID = userID

	if tx.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	switch tx.Type {
	case models.TransactionIncome, models.TransactionExpense, models.TransactionTransfer, models.TransactionAdjustment:
	default:
		return nil, fmt.Errorf("unknown transaction type: %s", tx.Type)
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}

	if tx.Currency == "" {
		tx.Currency = s.config.BaseCurrency
	} else if tx.Currency != s.config.BaseCurrency {
		converted, err := s.converter.Convert(tx.Amount, tx.Currency, s.config.BaseCurrency)
		if err != nil {
			return nil, fmt.Errorf("failed to convert currency: %w", err)
		}
		s.log.Infof("Converted %.2f %s to %.2f %s", tx.Amount, tx.Currency, converted, s.config.BaseCurrency)
		tx.Amount = converted
		tx.Currency = s.config.BaseCurrency
	}

	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction created for user %d: %s %.2f", userID, tx.Type, tx.Amount)
	return tx, nil
}

// DeleteTransaction removes a transaction owned by the authenticated user
func (s *Service) DeleteTransaction(ctx context.Context, transactionID int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteTransaction(userID, transactionID)
}

// ListTransactions retrieves the user's transactions within a date range
func (s *Service) ListTransactions(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, forecast.TransactionFilter{UserID: userID, From: from, To: to})
}

// CreateCategory creates a category for the authenticated user
func (s *Service) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	category.UserID = userID
	if category.Kind != "income" && category.Kind != "expense" {
		return nil, fmt.Errorf("unknown category kind: %s", category.Kind)
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	s.log.Infof("Category created for user %d: %s", userID, category.Name)
	return category, nil
}

// ListCategories retrieves the user's categories
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListCategories(userID)
}

// CreateBudget creates a budget for the authenticated user
func (s *Service) CreateBudget(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	budget.UserID = userID
	if budget.Period != "monthly" && budget.Period != "yearly" {
		return nil, fmt.Errorf("unknown budget period: %s", budget.Period)
	}
	if err := s.repo.CreateBudget(budget); err != nil {
		return nil, err
	}
	s.log.Infof("Budget created for user %d: category %s", userID, budget.CategoryID)
	return budget, nil
}

// ListBudgets retrieves the user's budgets
func (s *Service) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBudgets(userID)
}

// GenerateForecast runs the forecasting engine for the authenticated user
func (s *Service) GenerateForecast(ctx context.Context, query models.ForecastQuery) (*models.ForecastResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	query.UserID = userID
	return s.engine.GenerateFinancialForecast(ctx, query)
}

// GenerateCashFlow runs the cash-flow prediction for the authenticated user
func (s *Service) GenerateCashFlow(ctx context.Context, query models.ForecastQuery) (*models.CashFlowResult, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	query.UserID = userID
	return s.engine.GenerateCashFlowPrediction(ctx, query)
}

func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
