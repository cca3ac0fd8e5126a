package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// OTel instruments. They are no-ops until InitMetrics runs so the dispatcher
// can be used in tests without a meter provider.
var (
	opsCounter   metric.Int64Counter     = noop.Int64Counter{}
	opsHistogram metric.Float64Histogram = noop.Float64Histogram{}
	errorCounter metric.Int64Counter     = noop.Int64Counter{}
	resultGauge  metric.Float64Gauge     = noop.Float64Gauge{}
)

// failuresTotal counts failures by kind and operation on /metrics. The
// operation label is "unknown" for unregistered identifiers to keep
// cardinality bounded.
var failuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculator_failures_total",
		Help: "Total number of failed calculations by error kind.",
	},
	[]string{"kind", "operation"},
)

func init() {
	prometheus.MustRegister(failuresTotal)
}

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
