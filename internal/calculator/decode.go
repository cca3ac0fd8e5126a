package calculator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Wire names of the request fields, in validation order.
const (
	fieldOperand1  = "num1"
	fieldOperand2  = "num2"
	fieldOperation = "operation"
)

// DecodeRequest validates a raw request body.
//
// A body that is not a JSON object or lacks a required key is rejected with
// ErrMalformedRequest. Operands are checked before the operation: a
// non-number operand is a TypeMismatch, a non-string operation an
// InvalidOperation. Whether the operation is registered is decided later by
// Registry.Resolve.
func DecodeRequest(body io.Reader) (CalculationRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return CalculationRequest{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if raw == nil {
		return CalculationRequest{}, fmt.Errorf("%w: body must be a JSON object", ErrMalformedRequest)
	}

	for _, k := range []string{fieldOperand1, fieldOperand2, fieldOperation} {
		if _, ok := raw[k]; !ok {
			return CalculationRequest{}, fmt.Errorf("%w: missing field %q", ErrMalformedRequest, k)
		}
	}

	var (
		req CalculationRequest
		err error
	)

	if req.Operand1, err = decodeOperand(fieldOperand1, raw[fieldOperand1]); err != nil {
		return CalculationRequest{}, err
	}
	if req.Operand2, err = decodeOperand(fieldOperand2, raw[fieldOperand2]); err != nil {
		return CalculationRequest{}, err
	}

	if err := json.Unmarshal(raw[fieldOperation], &req.Operation); err != nil || jsonKind(raw[fieldOperation]) != "string" {
		return CalculationRequest{}, newError(InvalidOperation, "",
			fmt.Sprintf("operation must be a string, got %s", jsonKind(raw[fieldOperation])), nil)
	}

	return req, nil
}

func decodeOperand(field string, msg json.RawMessage) (float64, error) {
	kind := jsonKind(msg)
	if kind != "number" {
		return 0, newError(TypeMismatch, "", fmt.Sprintf("operand %s must be a number, got %s", field, kind), nil)
	}

	var v float64
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, newError(TypeMismatch, "", fmt.Sprintf("operand %s is not representable as a number", field), err)
	}
	return v, nil
}

// jsonKind names the JSON type of a raw value.
func jsonKind(msg json.RawMessage) string {
	b := bytes.TrimSpace(msg)
	if len(b) == 0 {
		return "nothing"
	}
	switch c := b[0]; {
	case c == '"':
		return "string"
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "unknown"
	}
}
