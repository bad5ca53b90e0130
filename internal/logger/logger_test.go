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

func TestNewLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.InfoLevel,
		"unknown": zapcore.InfoLevel,
	}
	for in, want := range cases {
		l := New(in, "json")
		assert.True(t, l.Core().Enabled(want), "level %s", in)
		if want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(want-1), "level %s", in)
		}
	}
}

func TestWrapperChaining(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core))

	l.WithFields(map[string]interface{}{"session": "abc"}).
		WithError(errors.New("boom")).
		Info("chained", map[string]interface{}{"n": 1})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "chained", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "abc", ctx["session"])
	assert.Equal(t, "boom", ctx["error"])
	assert.EqualValues(t, 1, ctx["n"])

	assert.NotPanics(t, func() {
		NewNoOpLogger().Error("dropped", nil)
	})
}
