package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "remote")
	cfg := LoadEnv()

	assert.Equal(t, "remote", cfg.Catalog.Source)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 3, cfg.Stock.MaxAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Cart.HandoffTTL)
	assert.Equal(t, "Sanrico Mercantile", cfg.Auth.BrandName)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("STOCK_TIMEOUT", "750ms")
	t.Setenv("CATALOG_PAGE_SIZE", "not-a-number")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")

	cfg := LoadEnv()

	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 750*time.Millisecond, cfg.Stock.Timeout)
	assert.Equal(t, 12, cfg.Catalog.PageSize, "unparseable ints fall back")
	assert.True(t, cfg.Logger.DisableCaller)
}
