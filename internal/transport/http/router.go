package rest

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/pkg/httpx"
)

// NewRouter — gin-роутер со всеми маршрутами.
// serviceName != "" включает otelgin; staticDir != "" раздаёт фронтенд.
func NewRouter(h *Handler, staticDir, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestLogger(h.log, "/ping", "/metrics"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/product", h.listProducts)
	r.GET("/product/:id", h.getProduct)
	r.GET("/catalog", h.getCatalog)
	r.POST("/basket", h.basket)

	checkout := r.Group("/checkout")
	checkout.POST("/order", h.checkForm(domain.FormOrder))
	checkout.POST("/contacts", h.checkForm(domain.FormBuyer))

	r.POST("/order", h.placeOrder)
	r.GET("/order/:id", h.getOrder)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	r.NoRoute(func(c *gin.Context) {
		httpx.AbortJSON(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		if c.Writer.Header().Get("Allow") == "" {
			if allowed := allowedMethods(r.Routes(), c.Request.URL.Path); len(allowed) > 0 {
				c.Header("Allow", strings.Join(allowed, ", "))
			}
		}
		httpx.AbortJSON(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// allowedMethods — методы маршрутов, чей шаблон совпадает с path.
func allowedMethods(routes gin.RoutesInfo, path string) []string {
	var out []string
	seen := map[string]bool{}
	for _, rt := range routes {
		if !seen[rt.Method] && matchPattern(rt.Path, path) {
			seen[rt.Method] = true
			out = append(out, rt.Method)
		}
	}
	return out
}

// matchPattern — сопоставление gin-шаблона (":param", "*rest") с путём.
func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range ps {
		if strings.HasPrefix(p, "*") {
			return true
		}
		if i >= len(xs) {
			return false
		}
		if !strings.HasPrefix(p, ":") && p != xs[i] {
			return false
		}
	}
	return len(ps) == len(xs)
}
