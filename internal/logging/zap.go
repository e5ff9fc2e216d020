package logging

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"
)

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	l *zap.SugaredLogger
}

// NewZapLogger builds a development-style zap logger at the given level
// ("debug", "info", "warn", "error").
func NewZapLogger(level string) (*ZapLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{l: zl.Sugar()}, nil
}

// NewZapLoggerWith wraps an existing sugared logger. Useful in tests with
// observed cores.
func NewZapLoggerWith(l *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{l: l}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{l: zap.NewNop().Sugar()}
}

func (z *ZapLogger) Debug(_ context.Context, msg string, args ...any) {
	z.l.Debugw(msg, args...)
}

func (z *ZapLogger) Info(_ context.Context, msg string, args ...any) {
	z.l.Infow(msg, args...)
}

func (z *ZapLogger) Warn(_ context.Context, msg string, args ...any) {
	z.l.Warnw(msg, args...)
}

func (z *ZapLogger) Error(_ context.Context, msg string, args ...any) {
	z.l.Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered log entries. Syncing stdout fails with EINVAL on
// some platforms, which is not a real error for a terminal application.
func (z *ZapLogger) Sync() error {
	err := z.l.Sync()
	if err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}
