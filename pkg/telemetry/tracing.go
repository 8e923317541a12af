package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Options — параметры экспорта трейсов.
type Options struct {
	Enabled     bool
	ServiceName string
	Endpoint    string // host:port OTLP/HTTP коллектора
	SampleRatio float64
}

// normalized — дефолтный endpoint, семплинг в [0..1].
func (o Options) normalized() Options {
	if o.Endpoint == "" {
		o.Endpoint = "localhost:4318"
	}
	if o.ServiceName == "" {
		o.ServiceName = "larek"
	}
	o.SampleRatio = min(max(o.SampleRatio, 0), 1)
	return o
}

// SetupTracing — OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// Выключенный трейсинг возвращает no-op shutdown.
func SetupTracing(ctx context.Context, opts Options) (func(context.Context) error, error) {
	if !opts.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	opts = opts.normalized()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := NewProvider(sdktrace.WithBatcher(exporter), opts)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// NewProvider — провайдер с ресурсом сервиса и семплером; экспорт задаётся снаружи
// (в тестах — tracetest.NewSpanRecorder).
func NewProvider(export sdktrace.TracerProviderOption, opts Options) *sdktrace.TracerProvider {
	opts = opts.normalized()
	return sdktrace.NewTracerProvider(
		export,
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	)
}
