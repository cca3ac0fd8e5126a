package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises failure bookkeeping across domains: it records the
// error on the span, increments the error counter and logs with trace context.
// Writing the response is left to the caller's renderer.
//
// Client errors are logged at warn level; anything else at error level.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, kind string, err error, clientError bool) {
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", kind),
	))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.String("kind", kind),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}

	if clientError {
		logger.Warn("request failed", fields...)
		return
	}
	logger.Error("request failed", fields...)
}
