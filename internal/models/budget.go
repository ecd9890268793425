package models

import "time"

// Budget represents a spending limit for a category over a period
type Budget struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Amount     float64   `json:"amount"`
	Period     string    `json:"period"` // "monthly" or "yearly"
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}
