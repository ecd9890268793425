package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	LogLevel       string
	JWTSecret      string
	RatesURL       string
	BaseCurrency   string
	DigestSchedule string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		RatesURL:       getEnv("RATES_URL", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"),
		BaseCurrency:   getEnv("BASE_CURRENCY", "EUR"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 8 * * MON"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@finance-tracker.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RatesURL == "" {
		return nil, fmt.Errorf("RATES_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
