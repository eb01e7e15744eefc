package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campusconnect/campus-api/internal/platform/logging"
)

// Logging returns middleware that logs request start and completion events.
// It creates a child logger enriched with the request ID and actor identity
// from context, stores it via logging.WithLogger for downstream use, and logs
// completion with method, path, status code, response size, and duration.
// Health probes log at debug level so orchestrator polling does not flood the
// info log.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			actor := ActorFromContext(ctx)
			child := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("actor_id", actor.ID),
				slog.String("actor_role", string(actor.Role)),
			)
			ctx = logging.WithLogger(ctx, child)

			level := slog.LevelInfo
			if strings.HasPrefix(r.URL.Path, "/health/") {
				level = slog.LevelDebug
			}

			child.Log(ctx, level, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			if child.Enabled(ctx, slog.LevelDebug) {
				headerAttrs := RedactHeaders(r.Header)
				args := make([]any, 0, len(headerAttrs))
				for _, a := range headerAttrs {
					args = append(args, a)
				}
				child.DebugContext(ctx, "request headers", args...)
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			child.Log(ctx, level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.status),
				slog.Int64("bytes", rw.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
