package middleware

import (
	"context"
	"net/http"

	"mergington-api/pkg/logger"

	"github.com/google/uuid"
)

// ContextKey represents keys used in request context
type ContextKey string

// RequestIDContextKey is the key for request ID in context
const RequestIDContextKey ContextKey = "request_id"

// RequestID creates a middleware that adds a unique request ID to each
// request, the response headers, and the request-scoped logs.
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			logger.WithFields(map[string]interface{}{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			}).Debug("Request received")

			next.ServeHTTP(w, r)
		})
	}
}

// GetRequestID extracts the request ID from a context, if present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}
