package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryArithmetic(t *testing.T) {
	reg := NewRegistry()

	pairs := [][2]float64{
		{2, 3}, {-2, 3}, {0, 0}, {3.1, -5.7}, {3, 5.1}, {-9.1, -3.1}, {1e6, 1e-6},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]

		add, err := reg.Resolve("add")
		require.NoError(t, err)
		got, err := add.Fn(a, b)
		require.NoError(t, err)
		assert.Equal(t, a+b, got, "add(%g, %g)", a, b)

		sub, err := reg.Resolve("subtract")
		require.NoError(t, err)
		got, err = sub.Fn(a, b)
		require.NoError(t, err)
		assert.Equal(t, a-b, got, "subtract(%g, %g)", a, b)

		mul, err := reg.Resolve("multiply")
		require.NoError(t, err)
		got, err = mul.Fn(a, b)
		require.NoError(t, err)
		assert.Equal(t, a*b, got, "multiply(%g, %g)", a, b)

		if b != 0 {
			div, err := reg.Resolve("divide")
			require.NoError(t, err)
			got, err = div.Fn(a, b)
			require.NoError(t, err)
			assert.Equal(t, a/b, got, "divide(%g, %g)", a, b)
		}
	}
}

func TestRegistryDivideByZero(t *testing.T) {
	div, err := NewRegistry().Resolve("divide")
	require.NoError(t, err)

	for _, a := range []float64{5, 0, -1.5, math.MaxFloat64} {
		_, err := div.Fn(a, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDivisionByZero))
		assert.Equal(t, InvalidValue, Classify(err))
	}
}

func TestRegistryResolveUnknownOperation(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"modulo", "", "ADD", "add ", "power"} {
		_, err := reg.Resolve(name)
		require.Error(t, err, "resolve %q", name)
		assert.Equal(t, InvalidOperation, Classify(err), "resolve %q", name)
	}
}

func TestRegistryOperationsOrder(t *testing.T) {
	reg := NewRegistry()

	ops := reg.Operations()
	assert.Equal(t, []string{"add", "subtract", "multiply", "divide"}, ops)

	ops[0] = "mutated"
	assert.Equal(t, "add", reg.Operations()[0], "Operations must return a copy")
}

func TestOperationFailureReason(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		op   string
		want string
	}{
		{op: "add", want: "Not able to add 1 and 2."},
		{op: "subtract", want: "Not able to subtract 2 from 1."},
		{op: "multiply", want: "Not able to multiply 1 and 2."},
		{op: "divide", want: "Not able to divide 1 by 2."},
	}

	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			op, err := reg.Resolve(tc.op)
			require.NoError(t, err)
			assert.Equal(t, tc.want, op.FailureReason(1, 2))
		})
	}

	assert.Equal(t, "Not able to explode 1 and 2.", Operation{Name: "explode"}.FailureReason(1, 2))
}
