package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is the structured logger handed to every component.
//
//go:generate mockgen -source log.go -destination=mock/log_mock.go -package=logger_mock
type Interface interface {
	Debug(message string, fields ...Field)
	DebugContext(ctx context.Context, message string, fields ...Field)
	Error(err error, fields ...Field)
	ErrorContext(ctx context.Context, err error, fields ...Field)
	GetZap() *zap.Logger
	Info(message string, fields ...Field)
	InfoContext(ctx context.Context, message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WarnContext(ctx context.Context, message string, fields ...Field)
	WithFields(fields ...Field) Interface
}

// Logger writes JSON entries through zap.
type Logger struct {
	logger *zap.Logger
}

// Field is one key-value pair attached to an entry.
type Field struct {
	Key   string
	Value any
}

// NewField returns Field with given key and value.
func NewField(key string, value any) Field {
	return Field{key, value}
}

// Level is a case-insensitive severity name: debug, info, warn or error.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// zapLevel falls back to info for unknown names.
func (level Level) zapLevel() zapcore.Level {
	parsed, err := zapcore.ParseLevel(strings.ToLower(string(level)))
	if err != nil || parsed > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return parsed
}

// Option adjusts the zap production config before the logger is built.
type Option func(cfg *zap.Config)

// WithLoggingLevel sets the minimum level written. Info when not given.
func WithLoggingLevel(level Level) Option {
	return func(cfg *zap.Config) {
		cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	}
}

// WithOutputPaths replaces stderr; "stdout" and "stderr" are understood.
func WithOutputPaths(paths ...string) Option {
	return func(cfg *zap.Config) {
		cfg.OutputPaths = paths
	}
}

// NewLogger builds a JSON logger with ISO8601 times under the "message" key.
func NewLogger(opts ...Option) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	for _, opt := range opts {
		opt(&cfg)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger: logger}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

func (l *Logger) Sync() error {
	return l.logger.Sync()
}

func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

func (l *Logger) WithFields(fields ...Field) Interface {
	return &Logger{logger: l.logger.With(zapFields(fields)...)}
}

func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, zapFields(fields)...)
}

func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, zapFields(fields)...)
}

func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, zapFields(fields)...)
}

func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.Debug(message, withRequestID(ctx, fields)...)
}

func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.Info(message, withRequestID(ctx, fields)...)
}

func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.Warn(message, withRequestID(ctx, fields)...)
}

// Error logs err as the message. Errors carrying a pkg/errors stack report
// that stack instead of the logging call site.
func (l *Logger) Error(err error, fields ...Field) {
	entry := l.logger.Check(zapcore.ErrorLevel, err.Error())
	if entry == nil {
		return
	}
	if tracer, ok := err.(errors.StackTracer); ok {
		if stack := strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace())); stack != "" {
			entry.Stack = stack
		}
	}
	entry.Write(zapFields(fields)...)
}

func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.Error(err, withRequestID(ctx, fields)...)
}

func zapFields(fields []Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	for i, field := range fields {
		out[i] = zap.Any(field.Key, field.Value)
	}
	return out
}

func withRequestID(ctx context.Context, fields []Field) []Field {
	if id := util.GetRequestID(ctx); id != "" {
		return append(fields, NewField("request_id", id))
	}
	return fields
}
