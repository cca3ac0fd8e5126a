package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key under which RequestIDMiddleware stores the
// correlation id.
const RequestIDKey contextKey = "request_id"

// NewRequestID returns a random UUIDv4 string.
func NewRequestID() string {
	return uuid.NewString()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestIDFromContext returns the stored request id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
