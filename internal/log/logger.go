package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	// CorrelatedIDKey holds the request's correlation ID in a context and
	// names the attribute every request-scoped log line carries.
	CorrelatedIDKey contextKey = "correlation_id"
	// LoggerKeyForContext holds the request-scoped *Logger.
	LoggerKeyForContext contextKey = "logger"

	CorrelationIDHeader = "X-Correlation-ID"
)

// Logger wraps slog so packages can depend on a single concrete type.
type Logger struct {
	*slog.Logger
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func NewLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewLoggerWithJSONOutput logs JSON to stdout at LOG_LEVEL.
func NewLoggerWithJSONOutput() *Logger {
	return NewLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func NewDiscardLogger() *Logger {
	return NewLogger(io.Discard, slog.LevelError)
}

// ParseLevel defaults to info for unknown names.
func ParseLevel(raw string) slog.Level {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return level
	}
	return slog.LevelInfo
}

func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	return &Logger{Logger: l.With(string(CorrelatedIDKey), GetOrGenerateCorrelationID(ctx))}
}

func GetOrGenerateCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelatedIDKey).(string); ok && id != "" {
		return id
	}
	return GenerateCorrelationID()
}

func GenerateCorrelationID() string {
	return uuid.NewString()
}

// GetLoggerInstanceFromContext prefers the logger stored in ctx. Otherwise it
// tags fallback (or a fresh stdout logger) with the context's correlation ID.
func GetLoggerInstanceFromContext(ctx context.Context, fallback *Logger) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerKeyForContext).(*Logger); ok && l != nil {
			return l
		}
	}

	base := fallback
	if base == nil {
		base = NewLoggerWithJSONOutput()
	}
	if ctx == nil {
		return base
	}
	return base.WithCorrelationID(ctx)
}
