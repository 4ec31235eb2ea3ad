package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := New("debug", format, "stderr")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	}
}

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "validate-job-application"})

	log.Debug("debug msg", nil)
	log.Info("info msg", map[string]interface{}{"field": "email"})
	log.Warn("warn msg", nil)
	log.WithError(errors.New("boom")).Error("error msg", nil)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "info msg", entries[1].Message)
	assert.Equal(t, "email", entries[1].ContextMap()["field"])
	assert.Equal(t, "validate-job-application", entries[0].ContextMap()["taskType"])
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.Info("nothing", map[string]interface{}{"a": 1})
		log.WithFields(nil).WithError(errors.New("x")).Error("still nothing", nil)
	})
}
