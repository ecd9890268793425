package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/forecast"
	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/SvetozarP/finance-tracker/internal/service"
	"github.com/gorilla/mux"
)

const dateParamFormat = "2006-01-02"

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		BaseCurrency string `json:"base_currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password, req.BaseCurrency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.svc.CreateAccount(r.Context(), req.Name, req.Currency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// CreateTransaction handles transaction creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateTransaction(r.Context(), &tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTransactions handles transaction listing within a date range
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRangeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.ListTransactions(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// DeleteTransaction handles transaction deletion
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory handles category creation
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateCategory(r.Context(), &category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListCategories handles category listing
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreateBudget handles budget creation
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateBudget(r.Context(), &budget)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListBudgets handles budget listing
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.ListBudgets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

// Forecast handles financial forecast generation
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	query, err := forecastQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.GenerateForecast(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CashFlow handles cash-flow prediction generation
func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	query, err := forecastQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.GenerateCashFlow(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// forecastQueryParams builds a ForecastQuery from URL parameters.
// Absent dates are left zero so the engine reports the validation
// failure itself.
func forecastQueryParams(r *http.Request) (models.ForecastQuery, error) {
	var query models.ForecastQuery
	params := r.URL.Query()

	if raw := params.Get("start_date"); raw != "" {
		parsed, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			return query, errors.New("invalid start_date, expected YYYY-MM-DD")
		}
		query.StartDate = parsed
	}
	if raw := params.Get("end_date"); raw != "" {
		parsed, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			return query, errors.New("invalid end_date, expected YYYY-MM-DD")
		}
		query.EndDate = parsed
	}
	if raw := params.Get("categories"); raw != "" {
		query.Categories = strings.Split(raw, ",")
	}
	if raw := params.Get("confidence_threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || threshold < 0 || threshold > 1 {
			return query, errors.New("invalid confidence_threshold, expected a value in [0,1]")
		}
		query.ConfidenceThreshold = threshold
	}
	query.IncludeRecurring = params.Get("include_recurring") != "false"
	query.Algorithm = params.Get("algorithm")
	return query, nil
}

func dateRangeParams(r *http.Request) (from, to time.Time, err error) {
	params := r.URL.Query()
	if raw := params.Get("from"); raw != "" {
		from, err = time.Parse(dateParamFormat, raw)
		if err != nil {
			return from, to, errors.New("invalid from date, expected YYYY-MM-DD")
		}
	}
	if raw := params.Get("to"); raw != "" {
		to, err = time.Parse(dateParamFormat, raw)
		if err != nil {
			return from, to, errors.New("invalid to date, expected YYYY-MM-DD")
		}
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto HTTP statuses: malformed queries
// are the client's fault, insufficient history is unprocessable.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *forecast.ValidationError
	var dataErr *forecast.InsufficientDataError
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &dataErr):
		http.Error(w, dataErr.Message, http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
