package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core)).With(zap.String("component", "cart"))

	log.Info("item added", zap.String("product_id", "1"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "item added", entry.Message)
	assert.Equal(t, "cart", entry.ContextMap()["component"])
	assert.Equal(t, "1", entry.ContextMap()["product_id"])
}

func TestNewZapLoggerToleratesBadLevel(t *testing.T) {
	log := NewZapLogger(&ZapLoggerConfig{Encoding: "json", Level: "loud"})
	require.NotNil(t, log)
	log.Debug("dropped at the default production level")
}
