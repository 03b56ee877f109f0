package logger

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/util"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{logger: zap.New(core)}, logs
}

func TestLogger_InfoContext(t *testing.T) {
	testCases := []struct {
		name     string
		ctx      context.Context
		assertFn func(t *testing.T, logs *observer.ObservedLogs)
	}{
		{
			name: "appends request id",
			ctx:  util.WithRequestID(context.Background(), "req-42"),
			assertFn: func(t *testing.T, logs *observer.ObservedLogs) {
				entry := logs.All()[0]
				assert.Equal(t, "req-42", entry.ContextMap()["request_id"])
				assert.Equal(t, "X", entry.ContextMap()["instrument_id"])
			},
		},
		{
			name: "no request id",
			ctx:  context.Background(),
			assertFn: func(t *testing.T, logs *observer.ObservedLogs) {
				entry := logs.All()[0]
				_, ok := entry.ContextMap()["request_id"]
				assert.False(t, ok)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, logs := newObservedLogger()
			l.InfoContext(tc.ctx, "tick stored", Field{Key: "instrument_id", Value: "X"})
			assert.Equal(t, 1, logs.Len())
			tc.assertFn(t, logs)
		})
	}
}

func TestLogger_Error(t *testing.T) {
	l, logs := newObservedLogger()
	err := errors.TracerFromError(errors.NewErrorDetails("store down", errors.StoreUnavailableError.String(), ""))

	l.WithFields(Field{Key: "component", Value: "stream"}).Error(err, Field{Key: "instrument_id", Value: "X"})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "store down", entries[0].Message)
	assert.NotEmpty(t, entries[0].Stack)
	assert.Equal(t, "stream", entries[0].ContextMap()["component"])
}

func TestLevel_zapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Level("DEBUG").zapLevel())
	assert.Equal(t, zapcore.WarnLevel, WarnLevel.zapLevel())
	assert.Equal(t, zapcore.InfoLevel, Level("verbose").zapLevel())
	assert.Equal(t, zapcore.InfoLevel, Level("fatal").zapLevel())
}

func TestNewLogger_WithLoggingLevel(t *testing.T) {
	l, err := NewLogger(WithLoggingLevel(WarnLevel), WithOutputPaths("stderr"))
	assert.NoError(t, err)
	assert.False(t, l.GetZap().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.GetZap().Core().Enabled(zapcore.WarnLevel))
}
