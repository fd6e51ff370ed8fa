// Package logger provides structured logging built on Go's slog package.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with printf-style helpers used across the service.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing JSON records to stdout at the given level.
// Correlation IDs are injected from the context automatically.
func New(level string) *Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	handler = NewCorrelationHandler(handler)

	l := slog.New(handler)
	slog.SetDefault(l)

	return &Logger{logger: l}
}

func (l *Logger) Debug(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// Fatal logs the error and exits the process.
func (l *Logger) Fatal(err error) {
	l.logger.Error(err.Error())
	os.Exit(1)
}

func (l *Logger) DebugCtx(ctx context.Context, format string, args ...any) {
	l.logger.DebugContext(ctx, fmt.Sprintf(format, args...))
}

func (l *Logger) InfoCtx(ctx context.Context, format string, args ...any) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *Logger) ErrorCtx(ctx context.Context, format string, args ...any) {
	l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
