package calculator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSlotRoundTrip(t *testing.T) {
	ctx := WithRequestSlot(context.Background())

	_, ok := RequestFromContext(ctx)
	assert.False(t, ok, "empty slot must read as absent")

	want := CalculationRequest{Operand1: 5, Operand2: 0, Operation: "divide"}
	require.True(t, StoreRequest(ctx, want))

	got, ok := RequestFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRequestSlotVisibleToDerivedContexts(t *testing.T) {
	parent := WithRequestSlot(context.Background())
	child, cancel := context.WithCancel(parent)
	defer cancel()

	require.True(t, StoreRequest(child, CalculationRequest{Operand1: 1, Operand2: 2, Operation: "add"}))

	got, ok := RequestFromContext(parent)
	require.True(t, ok, "a request stored downstream must be readable by the stage that installed the slot")
	assert.Equal(t, "add", got.Operation)
}

func TestStoreRequestWithoutSlot(t *testing.T) {
	ctx := context.Background()

	assert.False(t, StoreRequest(ctx, CalculationRequest{Operation: "add"}))

	_, ok := RequestFromContext(ctx)
	assert.False(t, ok)
}

func TestRequestSlotsAreIsolated(t *testing.T) {
	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ctx := WithRequestSlot(context.Background())
			want := CalculationRequest{Operand1: float64(i), Operand2: float64(-i), Operation: "add"}
			StoreRequest(ctx, want)

			got, ok := RequestFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		}(i)
	}
	wg.Wait()
}
