package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/larek/pkg/httpx"
)

type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recLogger) Infof(_ context.Context, f string, a ...any)  { l.add("INFO", f, a...) }
func (l *recLogger) Warnf(_ context.Context, f string, a ...any)  { l.add("WARN", f, a...) }
func (l *recLogger) Errorf(_ context.Context, f string, a ...any) { l.add("ERROR", f, a...) }

func TestRequestLogger_LevelsAndSkip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &recLogger{}

	r := gin.New()
	r.Use(httpx.RequestLogger(log, "/ping"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/ping", "/ok", "/missing/42", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, http.NoBody))
	}

	require.Len(t, log.lines, 3)
	assert.Contains(t, log.lines[0], "INFO request method=GET path=/ok status=200")
	assert.Contains(t, log.lines[1], "WARN request method=GET path=/missing/:id status=404")
	assert.Contains(t, log.lines[2], "ERROR request method=GET path=/boom status=500")
}
