package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestIDIsUniqueUUID(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		_, err := uuid.Parse(id)
		require.NoError(t, err, "request id %q", id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate request id %q", id)
		seen[id] = struct{}{}
	}
}

func TestRequestIDFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{name: "stored", ctx: ContextWithRequestID(context.Background(), "calc-42"), want: "calc-42"},
		{name: "inner value wins", ctx: ContextWithRequestID(ContextWithRequestID(context.Background(), "outer"), "inner"), want: "inner"},
		{name: "missing", ctx: context.Background(), want: ""},
		{name: "wrong type", ctx: context.WithValue(context.Background(), RequestIDKey, 42), want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RequestIDFromContext(tc.ctx))
		})
	}
}
