// Package logging builds the service's structured loggers on the standard
// library slog package and carries them through request contexts.
//
// Construction:
//
//	logger := logging.New("info", "json", os.Stderr)
//
// Context propagation (the logging middleware stores a request-scoped logger;
// services pull it back out):
//
//	ctx = logging.WithLogger(ctx, logger)
//	logger = logging.FromContext(ctx)
//
// Error logging convention for application services:
//
//	logger.ErrorContext(ctx, "failed to fetch report",
//	    slog.String("operation", "lostfound.Get"),
//	    slog.String("item_id", id),
//	    slog.Any("error", err),
//	)
//
// Every error log carries the operation name, entity identifiers, and the
// full error chain via slog.Any("error", err). When the logging middleware is
// active, the context logger already carries request_id and actor_id.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// loggerKey is the unexported context key for request-scoped loggers.
type loggerKey struct{}

// New creates a configured *slog.Logger writing to w.
//
// level sets the minimum level ("debug", "info", "warn", "error"; anything
// else means info). format selects the handler: "text" for the text handler,
// anything else for JSON. Debug level also turns on source locations.
// All handlers redact sensitive fields through the masq ReplaceAttr hook.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts))
	default:
		return slog.New(slog.NewJSONHandler(w, opts))
	}
}

// WithLogger returns a new context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the context's logger, or slog.Default() when none was
// stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
