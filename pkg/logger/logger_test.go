package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/insight/pkg/config"
)

func TestNew_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{name: "debug level", level: "debug", wantLevel: zerolog.DebugLevel},
		{name: "info level", level: "info", wantLevel: zerolog.InfoLevel},
		{name: "warn level", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "warning alias", level: "warning", wantLevel: zerolog.WarnLevel},
		{name: "error level", level: "error", wantLevel: zerolog.ErrorLevel},
		{name: "unknown defaults to info", level: "whatever", wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Env:       "development",
				LogLevel:  tt.level,
				LogFormat: "json",
			}

			log := New(cfg)
			require.NotNil(t, log)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := New(cfg)
	require.NotNil(t, log)

	// Should not panic on any method
	log.Debug("debug")
	log.Info("info")
	log.WithField("key", "value").Info("with field")
}

func TestWithFields(t *testing.T) {
	log := NewNop()

	log2 := log.WithFields(map[string]interface{}{
		"customer": "a@example.com",
		"count":    3,
	})

	require.NotNil(t, log2)
	// Derived loggers are independent copies
	assert.NotSame(t, log, log2)
}
