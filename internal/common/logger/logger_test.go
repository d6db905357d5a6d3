package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestZapAdapter_FieldsAreSortedAndErrorsNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "match-jobs-for-persona"})

	log.Info("processing job", map[string]interface{}{
		"personaId": "p-1",
		"jobKey":    int64(42),
		"error":     errors.New("boom"),
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "processing job", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "match-jobs-for-persona", ctx["taskType"])
	assert.Equal(t, "p-1", ctx["personaId"])
	assert.Equal(t, int64(42), ctx["jobKey"])
	assert.Equal(t, "boom", ctx["error"])

	fields := entries[0].Context
	assert.Equal(t, "taskType", fields[0].Key)
	assert.Equal(t, []string{"error", "jobKey", "personaId"}, []string{fields[1].Key, fields[2].Key, fields[3].Key})
}

func TestNewNoOpLogger_DoesNotPanic(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.WithError(errors.New("x")).With(map[string]interface{}{"a": 1}).Warn("warn", nil)
	})
}
