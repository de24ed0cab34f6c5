package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 99.0, cfg.ShippingFee)
	assert.Equal(t, 999.0, cfg.FreeShippingThreshold)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.DB.Enabled())
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("PAYMENT_DELAY", "50ms")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("SESSION_IDLE", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 50*time.Millisecond, cfg.PaymentDelay)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, 7, cfg.RateLimitBurst)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdle)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SHIPPING_FEE", "ninety")

	_, err := Load()
	assert.ErrorContains(t, err, "SHIPPING_FEE")
}
