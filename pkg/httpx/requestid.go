package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/larek/pkg/ctxmeta"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxRequestIDLen = 128
)

// RequestIDMiddleware — берёт X-Request-ID клиента (если он разумной длины) или генерирует UUID,
// кладёт его в контекст запроса и возвращает в ответном заголовке.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)
		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}
