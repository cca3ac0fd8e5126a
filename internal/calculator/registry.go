package calculator

import (
	"fmt"
	"math"
)

// OperationFn is a binary arithmetic function. It may fail with an error
// wrapping ErrInvalidValue for domain violations.
type OperationFn func(a, b float64) (float64, error)

// Operation is a registered arithmetic operation.
type Operation struct {
	Name string
	Fn   OperationFn

	// failure renders the client-facing reason for a ComputationFailure.
	failure func(a, b float64) string
}

// FailureReason describes a failed evaluation of op on a and b.
func (op Operation) FailureReason(a, b float64) string {
	if op.failure == nil {
		return fmt.Sprintf("Not able to %s %g and %g.", op.Name, a, b)
	}
	return op.failure(a, b)
}

// Registry maps operation identifiers to operations. It is built once by
// NewRegistry and only read afterwards, so concurrent lookups need no lock.
type Registry struct {
	ops   map[string]Operation
	names []string
}

// NewRegistry returns the registry of the four arithmetic operations.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Operation, 4)}

	r.register(Operation{
		Name: "add",
		Fn:   func(a, b float64) (float64, error) { return a + b, nil },
		failure: func(a, b float64) string {
			return fmt.Sprintf("Not able to add %g and %g.", a, b)
		},
	})
	r.register(Operation{
		Name: "subtract",
		Fn:   func(a, b float64) (float64, error) { return a - b, nil },
		failure: func(a, b float64) string {
			return fmt.Sprintf("Not able to subtract %g from %g.", b, a)
		},
	})
	r.register(Operation{
		Name: "multiply",
		Fn:   func(a, b float64) (float64, error) { return a * b, nil },
		failure: func(a, b float64) string {
			return fmt.Sprintf("Not able to multiply %g and %g.", a, b)
		},
	})
	r.register(Operation{
		Name: "divide",
		Fn:   divide,
		failure: func(a, b float64) string {
			return fmt.Sprintf("Not able to divide %g by %g.", a, b)
		},
	})

	return r
}

func (r *Registry) register(op Operation) {
	r.ops[op.Name] = op
	r.names = append(r.names, op.Name)
}

// Resolve looks up an operation by identifier. Unknown identifiers yield an
// *Error of kind InvalidOperation.
func (r *Registry) Resolve(name string) (Operation, error) {
	op, ok := r.ops[name]
	if !ok {
		return Operation{}, newError(InvalidOperation, name, "unknown operation", nil)
	}
	return op, nil
}

// Operations returns the registered identifiers in registration order.
func (r *Registry) Operations() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%g / %g: %w", a, b, ErrDivisionByZero)
	}
	return a / b, nil
}

// checkFinite rejects results JSON cannot encode.
func checkFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%g: %w", v, ErrNonFinite)
	}
	return nil
}
