package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/coursegen-api/internal/api/shared"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// Trace adds a trace ID and a logger tagged with it to the request context,
// and echoes the ID in the X-Trace-ID response header. Apply it early in the
// chain so every later handler sees both.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
