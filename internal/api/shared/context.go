package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/coursegen-api/internal/platform/logger"
)

// TraceIDHeader is the response header that echoes the request trace ID.
const TraceIDHeader = "X-Trace-ID"

// TraceIDLength is the length of a generated trace ID in hex characters.
const TraceIDLength = 32

// SetTraceID adds a fresh trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}

// generateTraceID returns a random UUID rendered as 32 hex characters.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
