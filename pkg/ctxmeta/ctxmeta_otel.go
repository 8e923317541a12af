//go:build otel && !gopls

package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Сборка с тегом `otel`: trace/span берутся из активного спана.

func spanContext(ctx context.Context) (trace.SpanContext, bool) {
	if ctx == nil {
		return trace.SpanContext{}, false
	}
	sc := trace.SpanContextFromContext(ctx)
	return sc, sc.IsValid()
}

func TraceIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.TraceID().String(), true
	}
	return "", false
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.SpanID().String(), true
	}
	return "", false
}
