//go:build otel

package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Gunvolt24/larek/pkg/ctxmeta"
)

func TestTraceIDs_ActiveSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("ctxmeta-test").Start(context.Background(), "op")
	defer span.End()

	traceID, ok := ctxmeta.TraceIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	spanID, ok := ctxmeta.SpanIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, span.SpanContext().SpanID().String(), spanID)

	kv := ctxmeta.KeyValues(ctxmeta.WithRequestID(ctx, "rid"))
	assert.Equal(t, []any{"request_id", "rid", "trace_id", traceID, "span_id", spanID}, kv)
}

func TestTraceIDs_NoSpan(t *testing.T) {
	for _, ctx := range []context.Context{context.Background(), nil} { //nolint:staticcheck // nil ctx допустим
		_, ok := ctxmeta.TraceIDFromContext(ctx)
		assert.False(t, ok)
		_, ok = ctxmeta.SpanIDFromContext(ctx)
		assert.False(t, ok)
	}
}
