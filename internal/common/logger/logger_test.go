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
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "save-job-draft"})

	log.Info("job completed", map[string]interface{}{"jobKey": int64(7)})
	log.WithError(errors.New("boom")).Error("job failed", map[string]interface{}{"cause": errors.New("redis down")})

	entries := logs.All()
	assert.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "save-job-draft", first["taskType"])
	assert.Equal(t, int64(7), first["jobKey"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "redis down", second["cause"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNewWithOutput(t *testing.T) {
	l := NewWithOutput("debug", "json", "stderr")
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.NotNil(t, NewNoOpLogger())
}
