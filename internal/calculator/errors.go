package calculator

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of calculation failure classes.
type ErrorKind int

const (
	// ComputationFailure is the residual kind: an operation failed or
	// panicked for a reason none of the other kinds describe.
	ComputationFailure ErrorKind = iota
	// InvalidOperation means the operation identifier is not registered.
	InvalidOperation
	// TypeMismatch means an operand is not a JSON number.
	TypeMismatch
	// InvalidValue means the operands are numeric but illegal for the
	// operation, e.g. a zero divisor.
	InvalidValue
)

// String returns the label used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case InvalidOperation:
		return "invalid_operation"
	case TypeMismatch:
		return "type_mismatch"
	case InvalidValue:
		return "invalid_value"
	default:
		return "computation_failure"
	}
}

var (
	// ErrInvalidValue marks domain violations. Operation functions wrap it
	// (directly or through a more specific sentinel) to be classified as
	// InvalidValue.
	ErrInvalidValue = errors.New("invalid operand value")

	// ErrDivisionByZero is returned by divide for a zero divisor.
	ErrDivisionByZero = fmt.Errorf("division by zero: %w", ErrInvalidValue)

	// ErrNonFinite is returned when an operation overflows to ±Inf or NaN.
	ErrNonFinite = errors.New("result is not a finite number")

	// ErrMalformedRequest rejects a body that is not a JSON object with
	// num1, num2 and operation keys. It is outside the ErrorKind taxonomy:
	// such requests never reach dispatch.
	ErrMalformedRequest = errors.New("malformed request")
)

// Error is a classified calculation failure.
type Error struct {
	Kind      ErrorKind
	Operation string
	Detail    string
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Operation != "" {
		msg = e.Operation + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, op, detail string, cause error) *Error {
	return &Error{Kind: kind, Operation: op, Detail: detail, Cause: cause}
}

// Classify maps any pipeline failure to exactly one ErrorKind. It is the
// only place kinds are decided for errors that did not originate as *Error.
func Classify(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		// An evaluation wrapper carries the kind it was built with unless the
		// cause says otherwise.
		if ce.Kind == ComputationFailure && errors.Is(ce.Cause, ErrInvalidValue) {
			return InvalidValue
		}
		return ce.Kind
	}
	if errors.Is(err, ErrInvalidValue) {
		return InvalidValue
	}
	return ComputationFailure
}

// asError normalizes err into an *Error, classifying it when needed.
func asError(op string, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		if k := Classify(ce); k != ce.Kind {
			cp := *ce
			cp.Kind = k
			return &cp
		}
		return ce
	}
	return newError(Classify(err), op, "", err)
}
