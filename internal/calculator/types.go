package calculator

// CalculationRequest is a validated POST /calculate/ body. It is passed by
// value and never modified after DecodeRequest returns it.
type CalculationRequest struct {
	Operand1  float64 `json:"num1"`
	Operand2  float64 `json:"num2"`
	Operation string  `json:"operation"`
}

// Result is the outcome of a dispatched calculation: either a value
// (Err == nil) or a classified failure.
type Result struct {
	Value float64
	Err   *Error
}

// OK reports whether the result holds a computed value.
func (r Result) OK() bool { return r.Err == nil }

// EnvelopeType discriminates ResponseEnvelope payloads.
type EnvelopeType string

const (
	TypeSuccess  EnvelopeType = "SUCCESS"
	TypeFailure  EnvelopeType = "FAILURE"
	TypeMetadata EnvelopeType = "METADATA"
)

// ResponseEnvelope is the JSON body of every calculator response.
//
// Output is a number for SUCCESS and a string for METADATA. The operand
// fields are pointers so a zero operand is still emitted when the request
// context is known, and omitted entirely when it is not.
type ResponseEnvelope struct {
	Type      EnvelopeType `json:"type"`
	Output    any          `json:"output,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Operand1  *float64     `json:"operand_1,omitempty"`
	Operand2  *float64     `json:"operand_2,omitempty"`
	Operation *string      `json:"operation,omitempty"`
}
