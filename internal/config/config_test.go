package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 45.0, cfg.Risk.UnderweightFallbackKg)
	assert.Equal(t, 3, cfg.Risk.RecomputeMaxRetries)
	assert.Contains(t, cfg.Database.DSN, "maternal_health")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_NAME", "maternal_test")
	t.Setenv("RISK_UNDERWEIGHT_FALLBACK_KG", "47.5")
	t.Setenv("RISK_RECOMPUTE_MAX_RETRIES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 47.5, cfg.Risk.UnderweightFallbackKg)
	assert.Equal(t, 5, cfg.Risk.RecomputeMaxRetries)
	assert.Contains(t, cfg.Database.DSN, "maternal_test")
}

func TestLoadConfigRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("RISK_UNDERWEIGHT_FALLBACK_KG", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}
