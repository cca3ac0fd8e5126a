package calculator

import "context"

type contextKey string

const requestSlotKey contextKey = "calculation_request"

// requestSlot holds the validated request for one inbound HTTP request.
// It is allocated per request by WithRequestSlot and only touched by the
// goroutine serving that request.
type requestSlot struct {
	req CalculationRequest
	set bool
}

// WithRequestSlot returns a child context carrying an empty request slot.
// The error-rendering stage installs it before dispatch so that whatever the
// dispatcher stores is visible to it afterwards.
func WithRequestSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestSlotKey, &requestSlot{})
}

// StoreRequest records req in the slot carried by ctx. It reports false when
// ctx has no slot.
func StoreRequest(ctx context.Context, req CalculationRequest) bool {
	slot, ok := ctx.Value(requestSlotKey).(*requestSlot)
	if !ok || slot == nil {
		return false
	}
	slot.req = req
	slot.set = true
	return true
}

// RequestFromContext returns the request stored for ctx, if any.
func RequestFromContext(ctx context.Context) (CalculationRequest, bool) {
	slot, ok := ctx.Value(requestSlotKey).(*requestSlot)
	if !ok || slot == nil || !slot.set {
		return CalculationRequest{}, false
	}
	return slot.req, true
}
