//go:build !otel || gopls

package ctxmeta

import "context"

// Без тега `otel` идентификаторов трассировки нет: KeyValues их пропускает.

func TraceIDFromContext(context.Context) (string, bool) { return "", false }

func SpanIDFromContext(context.Context) (string, bool) { return "", false }
