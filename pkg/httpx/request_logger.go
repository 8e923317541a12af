package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/larek/internal/ports"
)

// RequestLogger — access-лог; request_id/trace_id добавляет сам логгер из контекста.
// Пути из skip (по шаблону маршрута) не логируются.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, ok := skipped[path]; ok {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		const format = "request method=%s path=%s status=%d ip=%s duration=%s size=%d"
		args := []any{c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size()}

		switch {
		case status >= http.StatusInternalServerError:
			log.Errorf(ctx, format, args...)
		case status >= http.StatusBadRequest:
			log.Warnf(ctx, format, args...)
		default:
			log.Infof(ctx, format, args...)
		}
	}
}
