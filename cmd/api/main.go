package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/SvetozarP/finance-tracker/internal/config"
	"github.com/SvetozarP/finance-tracker/internal/digest"
	"github.com/SvetozarP/finance-tracker/internal/forecast"
	"github.com/SvetozarP/finance-tracker/internal/handler"
	"github.com/SvetozarP/finance-tracker/internal/integrations/rates"
	"github.com/SvetozarP/finance-tracker/internal/middleware"
	"github.com/SvetozarP/finance-tracker/internal/repository"
	"github.com/SvetozarP/finance-tracker/internal/service"
	"github.com/SvetozarP/finance-tracker/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := forecast.NewEngine(repo, repo, logger)
	ratesClient := rates.NewClient(cfg, logger)
	svc := service.NewService(repo, engine, ratesClient, logger, cfg)
	h := handler.NewHandler(svc)
	sender := email.NewSender(cfg, logger)

	// Schedule the weekly forecast digest
	scheduler := cron.New()
	job := digest.NewJob(repo, engine, sender, logger)
	if _, err := scheduler.AddJob(cfg.DigestSchedule, job); err != nil {
		logger.Fatalf("Failed to schedule digest: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Exchange rates endpoint
	r.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		current, err := ratesClient.GetRates()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get rates: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(current)
	}).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	authRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	authRouter.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	authRouter.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	authRouter.HandleFunc("/forecast", h.Forecast).Methods("GET")
	authRouter.HandleFunc("/cashflow", h.CashFlow).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
