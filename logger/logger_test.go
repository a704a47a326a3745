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

func TestConfig_SetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, DefaultLevel, cfg.Level)
	assert.Equal(t, DefaultOutputPaths, cfg.OutputPaths)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.NotNil(t, l.With(String("k", "v")))
}

func TestFromZap_WritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(String("table", "#prices"))

	l.Debug("attempt failed", Int("attempt", 2), Error(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "attempt failed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "#prices", ctx["table"])
	assert.Equal(t, int64(2), ctx["attempt"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestOrNop(t *testing.T) {
	assert.IsType(t, &NoOpLogger{}, OrNop(nil))

	l := NewNop()
	assert.Same(t, l, OrNop(l))
	assert.NoError(t, l.Sync())
}
