package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CART_STORE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, CartStorePostgres, cfg.Cart.Store)
	assert.Equal(t, "PayPal", cfg.Cart.DefaultPaymentMethod)
	assert.Equal(t, 720*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "150", cfg.Pricing.FreeShippingThreshold.String())
	assert.Equal(t, "10", cfg.Pricing.FlatShippingFee.String())
	assert.Equal(t, "0.08", cfg.Pricing.TaxRate.String())
	assert.Equal(t, 6, cfg.Catalog.PageSize)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("CART_STORE", "memory")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "0.1", cfg.Pricing.TaxRate.String())
	assert.Equal(t, CartStoreMemory, cfg.Cart.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadReportsEveryInvalidValue(t *testing.T) {
	t.Setenv("CART_TTL", "forever")
	t.Setenv("FLAT_SHIPPING_FEE", "-1")
	t.Setenv("CART_STORE", "disk")

	_, err := Load()
	require.Error(t, err)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Contains(t, err.Error(), "CART_TTL")
	assert.Contains(t, err.Error(), "FLAT_SHIPPING_FEE")
	assert.Contains(t, err.Error(), "CART_STORE")
}

func TestLoadRequiresBackendForCartStore(t *testing.T) {
	t.Setenv("CART_STORE", "redis")
	t.Setenv("REDIS_HOST", "")

	_, err := Load()
	assert.Error(t, err)
}
