package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/larek/config"
	cachemem "github.com/Gunvolt24/larek/internal/cache/memory"
	rediscache "github.com/Gunvolt24/larek/internal/cache/redis"
	"github.com/Gunvolt24/larek/internal/kafka"
	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/internal/repo/postgres"
	rest "github.com/Gunvolt24/larek/internal/transport/http"
	"github.com/Gunvolt24/larek/internal/usecase"
	"github.com/Gunvolt24/larek/pkg/logger"
	"github.com/Gunvolt24/larek/pkg/metrics"
	"github.com/Gunvolt24/larek/pkg/telemetry"
	"github.com/Gunvolt24/larek/pkg/validate"
)

// App — собранное приложение: HTTP API и консьюмер снимков каталога.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	CatalogConsumer ports.MessageConsumer
	gracefulTimeout time.Duration
}

// Cleanup — освобождение ресурсов, собранных в Bootstrap.
type Cleanup func()

// applyGinMode — режим Gin по строке; неизвестное значение → debug с предупреждением.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// newOrderCache — кэш заказов по конфигу. Недоступный Redis не роняет старт:
// сервис работает с локальным LRU.
func newOrderCache(ctx context.Context, cfg config.Cache, log ports.Logger) (ports.OrderCache, func()) {
	local := func() (ports.OrderCache, func()) {
		return cachemem.NewLRUCacheTTL(cfg.Capacity, cfg.TTL), func() {}
	}
	if cfg.Backend != config.CacheRedis {
		return local()
	}

	client, err := rediscache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warnf(ctx, "redis cache unavailable (addr=%s), using in-memory cache: %v", cfg.RedisAddr, err)
		return local()
	}
	log.Infof(ctx, "redis cache enabled addr=%s db=%d", cfg.RedisAddr, cfg.RedisDB)
	return rediscache.NewSubmissionCache(client, "", cfg.TTL, log), func() {
		if err := client.Close(); err != nil {
			log.Warnf(context.Background(), "redis close error: %v", err)
		}
	}
}

// Bootstrap — собирает зависимости по конфигу.
// Каталог читается из Postgres сразу; дальше его обновляет консьюмер.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		_ = cleanupLogger()
		return nil, func() {}, err
	}

	shutdownTrace, err := telemetry.SetupTracing(ctx, telemetry.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		shutdownTrace = func(context.Context) error { return nil }
	} else if cfg.Tracing.Enabled {
		logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}

	// каталог
	catalogService := usecase.NewCatalogService(postgres.NewCatalogRepository(pool), logg)
	if err := catalogService.Load(ctx); err != nil {
		logg.Warnf(ctx, "initial catalog load failed, starting with empty catalog: %v", err)
	}

	// оформление заказа
	publisher := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrdersTopic,
	})
	orderCache, closeCache := newOrderCache(ctx, cfg.Cache, logg)
	checkoutService := usecase.NewCheckoutService(
		catalogService,
		validate.NewOrderInfoValidator(cfg.Checkout.PaymentMethods...),
		validate.NewBuyerInfoValidator(),
		postgres.NewOrderRepository(pool),
		orderCache,
		publisher,
		logg,
	)
	if err := checkoutService.WarmUpCache(ctx, cfg.Cache.WarmUpN); err != nil {
		logg.Warnf(ctx, "warm-up cache failed: %v", err)
	}

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	handler := rest.NewHandler(catalogService, checkoutService, logg, cfg.HTTP.HandlerTimeout)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           rest.NewRouter(handler, cfg.HTTP.StaticDir, otelServiceName),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.CatalogTopic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}, catalogService, logg)

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		CatalogConsumer: consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// в обратном порядке сборки
	cleanup := func() {
		bg := context.Background()
		if err := consumer.Close(); err != nil {
			logg.Warnf(bg, "catalog consumer close error: %v", err)
		}
		if err := publisher.Close(); err != nil {
			logg.Warnf(bg, "order publisher close error: %v", err)
		}
		closeCache()
		if err := shutdownTrace(bg); err != nil {
			logg.Warnf(bg, "shutdown tracing: %v", err)
		}
		pool.Close()
		_ = cleanupLogger()
	}

	return app, cleanup, nil
}

// Run — HTTP-сервер и консьюмер до отмены ctx или первой фоновой ошибки, затем graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.Logger.Infof(ctx, "catalog consumer starting")
		if err := a.CatalogConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Errorf(ctx, "background error: %v", err)
			runErr = err
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	if err := a.CatalogConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "catalog consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
