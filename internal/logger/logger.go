package logger

import (
	"github.com/kartik7022/FlowEngine/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new structured logger instance
func NewLogger(cfg *config.Config) *Logger {
	log := logrus.New()

	// Set log level
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithTenant adds tenant context to log entries
func (l *Logger) WithTenant(tenantID string) *logrus.Entry {
	return l.WithField("tenant_id", tenantID)
}

// WithIntent adds tenant and intent context to log entries
func (l *Logger) WithIntent(tenantID string, intentID int) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"intent_id": intentID,
	})
}

// WithDatasource adds tenant and datasource context to log entries
func (l *Logger) WithDatasource(tenantID string, datasourceID int) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"datasource_id": datasourceID,
	})
}
