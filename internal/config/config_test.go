package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ORDER_STOCK_POLICY", "")
	t.Setenv("SALE_STOCK_POLICY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StockPolicyNone, cfg.Stock.OrderPolicy)
	assert.Equal(t, StockPolicyEnforce, cfg.Stock.SalePolicy)
	assert.Equal(t, 5, cfg.Database.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Database.MaxRetryDelay)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("SALE_STOCK_POLICY", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SALE_STOCK_POLICY")
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := &Config{
		App:   AppConfig{Environment: "production"},
		Stock: StockConfig{OrderPolicy: StockPolicyNone, SalePolicy: StockPolicyEnforce},
	}
	assert.Error(t, cfg.Validate())
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
