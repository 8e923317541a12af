package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Gunvolt24/larek/pkg/telemetry"
)

func TestSetupTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := telemetry.SetupTracing(context.Background(), telemetry.Options{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_RecordsSpansWithServiceName(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := telemetry.NewProvider(sdktrace.WithSpanProcessor(rec), telemetry.Options{ServiceName: "larek-test", SampleRatio: 1})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "checkout")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "checkout", ended[0].Name())

	var service string
	for _, kv := range ended[0].Resource().Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "larek-test", service)
}

func TestNewProvider_ZeroRatioDropsRootSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := telemetry.NewProvider(sdktrace.WithSpanProcessor(rec), telemetry.Options{SampleRatio: -3})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "dropped")
	span.End()

	assert.Empty(t, rec.Ended())
}
