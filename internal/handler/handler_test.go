package handler

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", &forecast.ValidationError{Field: "start_date", Message: "start_date is required"}, 400},
		{"insufficient data", &forecast.InsufficientDataError{Message: forecast.MsgInsufficientForecastData}, 422},
		{"wrapped insufficient data", fmt.Errorf("forecast: %w", &forecast.InsufficientDataError{Message: forecast.MsgInsufficientCashFlowData}), 422},
		{"unexpected error", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestForecastQueryParams(t *testing.T) {
	t.Run("parses dates and categories", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/forecast?start_date=2024-01-01&end_date=2024-03-31&categories=rent,food", nil)
		query, err := forecastQueryParams(r)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), query.StartDate)
		assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), query.EndDate)
		assert.Equal(t, []string{"rent", "food"}, query.Categories)
	})

	t.Run("absent dates stay zero for the engine to reject", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/forecast", nil)
		query, err := forecastQueryParams(r)
		require.NoError(t, err)
		assert.True(t, query.StartDate.IsZero())
		assert.True(t, query.EndDate.IsZero())
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/forecast?start_date=January", nil)
		_, err := forecastQueryParams(r)
		assert.Error(t, err)
	})

	t.Run("out of range confidence threshold is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/forecast?start_date=2024-01-01&end_date=2024-03-31&confidence_threshold=1.5", nil)
		_, err := forecastQueryParams(r)
		assert.Error(t, err)
	})
}
