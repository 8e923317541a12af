// Пакет ctxmeta — метаданные запроса в context.Context (request_id, trace_id, span_id).
// HTTP-слой кладёт, логгер читает; друг от друга они не зависят.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// KeyValues — пары ключ/значение для структурного логгера; пустые значения пропускаются.
func KeyValues(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var kv []any
	if v, ok := RequestIDFromContext(ctx); ok {
		kv = append(kv, string(KeyRequestID), v)
	}
	if v, ok := TraceIDFromContext(ctx); ok {
		kv = append(kv, "trace_id", v)
	}
	if v, ok := SpanIDFromContext(ctx); ok {
		kv = append(kv, "span_id", v)
	}
	return kv
}
