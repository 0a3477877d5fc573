package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type otherKey struct{}

func TestTraceIDContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), otherKey{}, "v")
	assert.Empty(t, TraceIDFromContext(ctx))

	ctx = WithTraceID(ctx, "first")
	ctx = WithTraceID(ctx, "second")
	assert.Equal(t, "second", TraceIDFromContext(ctx))
	assert.Equal(t, "v", ctx.Value(otherKey{}))

	//nolint:staticcheck // проверка nil context
	assert.Empty(t, TraceIDFromContext(nil))
}
