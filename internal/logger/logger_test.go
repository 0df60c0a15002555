package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartik7022/FlowEngine/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("json format and level from config", func(t *testing.T) {
		log := NewLogger(&config.Config{Logging: config.LoggingConfig{Level: "debug", Format: "json"}})

		assert.Equal(t, logrus.DebugLevel, log.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		log := NewLogger(&config.Config{Logging: config.LoggingConfig{Level: "chatty", Format: "text"}})

		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	})
}

func TestEntryHelpers(t *testing.T) {
	log := &Logger{Logger: logrus.New()}

	t.Run("WithTenant", func(t *testing.T) {
		entry := log.WithTenant("acme")
		assert.Equal(t, "acme", entry.Data["tenant_id"])
	})

	t.Run("WithIntent carries the tenant", func(t *testing.T) {
		entry := log.WithIntent("acme", 7)
		require.Equal(t, "acme", entry.Data["tenant_id"])
		assert.Equal(t, 7, entry.Data["intent_id"])
	})

	t.Run("WithDatasource carries the tenant", func(t *testing.T) {
		entry := log.WithDatasource("acme", 3)
		require.Equal(t, "acme", entry.Data["tenant_id"])
		assert.Equal(t, 3, entry.Data["datasource_id"])
	})
}
