package main

import (
	"context"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// initTelemetry starts the OTLP providers when enabled and registers the
// calculator's metric instruments. The returned operations flush and stop the
// providers on shutdown.
func initTelemetry(ctx context.Context, cfg config.Config) (map[string]gfshutdown.Operation, error) {
	ops := map[string]gfshutdown.Operation{}

	if cfg.OTEL.Enabled {
		traceShutdown, err := observability.InitTracing(ctx, cfg.OTEL.ServiceName)
		if err != nil {
			return nil, err
		}
		ops["otel-tracing"] = traceShutdown

		metricShutdown, err := observability.InitMetrics(ctx)
		if err != nil {
			return nil, err
		}
		ops["otel-metrics"] = metricShutdown

		logShutdown, err := observability.InitLogging(ctx, cfg.OTEL.ServiceName)
		if err != nil {
			return nil, err
		}
		ops["otel-logging"] = logShutdown
	}

	// Instruments bind to whichever meter provider is global at this point.
	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return ops, nil
}
