package applog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// DefaultLogger wraps slog.Logger and implements AppLogger.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewAppDefaultLogger creates a text logger on stderr; stdout stays reserved for usage output.
func NewAppDefaultLogger(level string) *DefaultLogger {
	return NewLogger(os.Stderr, level)
}

func NewLogger(w io.Writer, level string) *DefaultLogger {
	return &DefaultLogger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(level), AddSource: false})),
	}
}

func (l *DefaultLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, withSource(args)...)
}

func (l *DefaultLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, withSource(args)...)
}

func (l *DefaultLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, withSource(args)...)
}

func (l *DefaultLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, withSource(args)...)
}

func (l *DefaultLogger) Trace(msg string, args ...any) {
	l.logger.Log(context.Background(), LevelTrace, msg, withSource(args)...)
}

func withSource(args []any) []any {
	src := callerSource(2)
	if src == "" {
		return args
	}
	return append([]any{"source", src}, args...)
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// ParseLogLevel maps a case-insensitive level name to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
