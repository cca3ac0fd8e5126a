package calculator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// state names the dispatcher stages; each is recorded as a span event.
type state string

const (
	stateReceived  state = "received"
	stateValidated state = "validated"
	stateResolved  state = "resolved"
	stateEvaluated state = "evaluated"
	stateRendered  state = "rendered"
)

func markState(ctx context.Context, s state) {
	trace.SpanFromContext(ctx).AddEvent("calculator.state",
		trace.WithAttributes(attribute.String("state", string(s))))
}

// Options configures a Dispatcher.
type Options struct {
	// EnrichErrors adds the request's operands and operation to failure
	// envelopes.
	EnrichErrors bool
	// WelcomeMessage is returned by GET /.
	WelcomeMessage string
}

// Dispatcher runs the validate, resolve, evaluate and render pipeline for
// calculation requests. It holds no per-request state and is safe for
// concurrent use.
type Dispatcher struct {
	registry *Registry
	enrich   bool
	welcome  string
}

// NewDispatcher returns a dispatcher resolving operations from reg.
func NewDispatcher(reg *Registry, opts Options) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		enrich:   opts.EnrichErrors,
		welcome:  opts.WelcomeMessage,
	}
}

// ErrorHandlerFunc is an HTTP handler that returns failures instead of
// rendering them.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler adapts h into an http.Handler. It gives every request its own
// request slot before h runs and renders any error h returns, reading the
// operands h stored in the slot.
func (d *Dispatcher) ErrorHandler(h ErrorHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithRequestSlot(r.Context())

		ctx, span := tracer.Start(ctx, "calculator.request",
			trace.WithAttributes(
				attribute.String("request.id", observability.RequestIDFromContext(ctx)),
			),
		)
		defer span.End()

		markState(ctx, stateReceived)

		if err := h(w, r.WithContext(ctx)); err != nil {
			d.renderFailure(ctx, span, w, err)
		}

		markState(ctx, stateRendered)
	})
}

// Calculate handles POST /calculate/. Successful results are written here;
// failures are returned to ErrorHandler.
func (d *Dispatcher) Calculate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	req, err := DecodeRequest(r.Body)
	if err != nil {
		return err
	}
	StoreRequest(ctx, req)
	markState(ctx, stateValidated)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("calculator.operation", req.Operation),
			attribute.Float64("calculator.operand.a", req.Operand1),
			attribute.Float64("calculator.operand.b", req.Operand2),
		),
	)
	defer span.End()

	start := time.Now()
	res := d.Evaluate(ctx, req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if !res.OK() {
		span.SetStatus(codes.Error, res.Err.Kind.String())
		return res.Err
	}

	attrs := metric.WithAttributes(attribute.String("operation", req.Operation))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, res.Value, attrs)

	span.SetAttributes(attribute.Float64("calculator.result", res.Value))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", req.Operation),
		zap.Float64("a", req.Operand1),
		zap.Float64("b", req.Operand2),
		zap.Float64("result", res.Value),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	status, env := Render(ctx, res, d.enrich)
	if err := handlers.WriteJSON(w, status, env); err != nil {
		logger.Error("writing response", zap.Error(err))
	}
	return nil
}

// Evaluate resolves req.Operation and applies it to the operands. It never
// panics: a panicking operation yields a ComputationFailure.
func (d *Dispatcher) Evaluate(ctx context.Context, req CalculationRequest) (res Result) {
	op, err := d.registry.Resolve(req.Operation)
	if err != nil {
		return Result{Err: asError(req.Operation, err)}
	}
	markState(ctx, stateResolved)

	defer func() {
		if p := recover(); p != nil {
			observability.LoggerWithTrace(ctx).Error("operation panicked",
				zap.String("operation", op.Name),
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()),
			)
			res = Result{Err: newError(ComputationFailure, op.Name,
				op.FailureReason(req.Operand1, req.Operand2), fmt.Errorf("panic: %v", p))}
		}
	}()

	v, err := op.Fn(req.Operand1, req.Operand2)
	if err == nil {
		err = checkFinite(v)
	}
	markState(ctx, stateEvaluated)

	if err != nil {
		kind := Classify(err)
		var detail string
		if kind == ComputationFailure {
			detail = op.FailureReason(req.Operand1, req.Operand2)
		}
		return Result{Err: newError(kind, op.Name, detail, err)}
	}

	return Result{Value: v}
}

// Metadata handles GET /.
func (d *Dispatcher) Metadata(w http.ResponseWriter, r *http.Request) {
	status, env := Metadata(d.welcome)
	_ = handlers.WriteJSON(w, status, env)
}

func (d *Dispatcher) renderFailure(ctx context.Context, span trace.Span, w http.ResponseWriter, err error) {
	logger := observability.LoggerWithTrace(ctx)

	if errors.Is(err, ErrMalformedRequest) {
		observability.RecordError(ctx, span, logger, errorCounter, "unknown", "malformed_request", err, true)
		status, env := RenderRejection(err)
		_ = handlers.WriteJSON(w, status, env)
		return
	}

	ce := asError("", err)
	opLabel := d.operationLabel(ce.Operation)

	failuresTotal.WithLabelValues(ce.Kind.String(), opLabel).Inc()
	observability.RecordError(ctx, span, logger, errorCounter, opLabel, ce.Kind.String(), err, ce.Kind != ComputationFailure)

	status, env := Render(ctx, Result{Err: ce}, d.enrich)
	_ = handlers.WriteJSON(w, status, env)
}

// operationLabel bounds metric label values to registered operations.
func (d *Dispatcher) operationLabel(name string) string {
	if _, err := d.registry.Resolve(name); err != nil {
		return "unknown"
	}
	return name
}
