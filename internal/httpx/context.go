package httpx

import (
	"context"
	"net/http"

	"bookview/internal/logger"
)

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	return logger.IDFrom(r.Context())
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return logger.ContextWithID(ctx, requestID)
}
