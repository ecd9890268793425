package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.NotEmpty(t, cfg.RatesURL)
	assert.NotEmpty(t, cfg.DigestSchedule)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("BASE_CURRENCY", "USD")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "USD", cfg.BaseCurrency)
}

func TestNewConfig_RequiredValues(t *testing.T) {
	t.Setenv("DB_CONN", "")

	_, err := NewConfig()
	assert.Error(t, err)
}
