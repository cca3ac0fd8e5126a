package calculator

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Client-facing failure reasons.
const (
	ReasonInvalidOperation = "Not a valid operation"
	ReasonDivisionByZero   = "Cannot divide by zero"
	ReasonInvalidValue     = "ValueError: operands have the correct type but an inappropriate value"
	ReasonComputation      = "Computation failed"
	reasonTypeMismatch     = "TypeError: mismatch between the expected and the actual data type of the operands"
)

// Render converts a dispatch result into a status code and envelope. When
// enrich is set, failure envelopes carry the operands and operation stored in
// ctx by the dispatcher; if nothing was stored those fields are left out.
func Render(ctx context.Context, res Result, enrich bool) (int, ResponseEnvelope) {
	if res.OK() {
		return http.StatusOK, ResponseEnvelope{Type: TypeSuccess, Output: res.Value}
	}

	env := ResponseEnvelope{Type: TypeFailure, Reason: reason(res.Err)}
	if enrich {
		if req, ok := RequestFromContext(ctx); ok {
			env.Operand1 = &req.Operand1
			env.Operand2 = &req.Operand2
			env.Operation = &req.Operation
		}
	}

	return statusFor(res.Err.Kind), env
}

// RenderRejection renders a request refused before dispatch.
func RenderRejection(err error) (int, ResponseEnvelope) {
	status := http.StatusUnprocessableEntity

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}

	return status, ResponseEnvelope{
		Type:   TypeFailure,
		Reason: "Invalid request body: " + strings.TrimPrefix(err.Error(), ErrMalformedRequest.Error()+": "),
	}
}

// Metadata renders the GET / payload.
func Metadata(text string) (int, ResponseEnvelope) {
	return http.StatusOK, ResponseEnvelope{Type: TypeMetadata, Output: text}
}

func statusFor(kind ErrorKind) int {
	if kind == InvalidOperation {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func reason(e *Error) string {
	switch e.Kind {
	case InvalidOperation:
		return ReasonInvalidOperation
	case TypeMismatch:
		if e.Detail == "" {
			return reasonTypeMismatch
		}
		return "TypeError: " + e.Detail
	case InvalidValue:
		if errors.Is(e, ErrDivisionByZero) {
			return ReasonDivisionByZero
		}
		return ReasonInvalidValue
	default:
		if e.Detail == "" {
			return ReasonComputation
		}
		return e.Detail
	}
}
