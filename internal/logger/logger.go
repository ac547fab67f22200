// Package logger sets up slog for the server and the CLI, and carries
// request-scoped attributes through a context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zapponejosh/thai-calendar-api/internal/config"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	attrsKey
)

// RequestIDAttr is the attribute name request IDs are logged under.
const RequestIDAttr = "request_id"

// Setup installs the server's default logger on stdout.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

// SetupWriter installs a default logger writing to w. format is "json" or
// anything else for text. The CLI passes stderr so its stdout stays parseable.
func SetupWriter(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

// ParseLevel accepts the slog level names in any case ("debug", "WARN",
// "info+2") plus "warning". Anything else is info.
func ParseLevel(level string) slog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WithRequestID tags ctx with a request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithAttrs adds attributes that every log line written with ctx will carry,
// such as the birth record or input file being worked on.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(attrsKey).([]any)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(append(merged, prev...), args...)
	return context.WithValue(ctx, attrsKey, merged)
}

// FromContext returns the default logger with ctx's request ID and
// attributes attached.
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id := RequestID(ctx); id != "" {
		l = l.With(slog.String(RequestIDAttr, id))
	}
	if attrs, ok := ctx.Value(attrsKey).([]any); ok {
		l = l.With(attrs...)
	}
	return l
}

func logAt(ctx context.Context, level slog.Level, msg string, args ...any) {
	FromContext(ctx).Log(ctx, level, msg, args...)
}

// Error logs msg with err under the "error" key.
func Error(ctx context.Context, msg string, err error, args ...any) {
	logAt(ctx, slog.LevelError, msg, append([]any{slog.Any("error", err)}, args...)...)
}

func Info(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelInfo, msg, args...) }

func Debug(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelDebug, msg, args...) }

func Warn(ctx context.Context, msg string, args ...any) { logAt(ctx, slog.LevelWarn, msg, args...) }
