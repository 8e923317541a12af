//go:build !integration

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/usecase"
)

// --- Бенчмарки ---

// Чтение каталога: LEAN (без middleware) vs FULL (пайплайн из NewRouter), разные размеры
func BenchmarkHTTP_GetCatalog(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		h := NewHandler(benchCatalog(b, n), nil, nopLogger{}, 2*time.Second)

		b.Run("lean/N="+strconv.Itoa(n), func(b *testing.B) {
			benchServe(b, makeLeanRouter(h), http.MethodGet, "/catalog", "")
		})
		b.Run("full/N="+strconv.Itoa(n), func(b *testing.B) {
			benchServe(b, makeFullRouter(h), http.MethodGet, "/catalog", "")
		})
	}
}

// Корзина: парсинг тела + проекция товаров
func BenchmarkHTTP_Basket(b *testing.B) {
	h := NewHandler(benchCatalog(b, 100), nil, nopLogger{}, 2*time.Second)

	ids := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		ids = append(ids, `"p-`+strconv.Itoa(i*7)+`"`)
	}
	body := `{"ids":[` + strings.Join(ids, ",") + `]}`

	benchServe(b, makeLeanRouter(h), http.MethodPost, "/basket", body)
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- функции-помощники ---

func benchCatalog(b *testing.B, n int) *usecase.CatalogService {
	b.Helper()
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		p := domain.Product{ID: "p-" + strconv.Itoa(i), Title: "Товар " + strconv.Itoa(i), Category: "другое"}
		if i%3 != 0 {
			p.Price = domain.PriceOf(float64(i * 10))
		}
		products = append(products, p)
	}
	c, err := domain.NewCatalog(products, nil)
	if err != nil {
		b.Fatal(err)
	}
	svc := usecase.NewCatalogService(nil, nopLogger{})
	svc.Replace(c)
	return svc
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/catalog", h.getCatalog)
	r.POST("/basket", h.basket)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	return NewRouter(h, "", "")
}

func benchServe(b *testing.B, r *gin.Engine, method, path, body string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			var rd io.Reader = http.NoBody
			if body != "" {
				rd = strings.NewReader(body)
			}
			req, _ := http.NewRequest(method, path, rd)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
		}
	})
}
