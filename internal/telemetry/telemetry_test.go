package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/BaSui01/fluxgen/config"
)

// keepGlobals restores the global providers after the test.
func keepGlobals(t *testing.T) {
	t.Helper()
	tp, mp := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
	})
}

// shutdownLater 没有 collector 运行，只给 1s 刷新时间
func shutdownLater(t *testing.T, p *Providers) {
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	})
}

func TestInit_Disabled(t *testing.T) {
	keepGlobals(t)

	p, err := Init(context.Background(), config.TelemetryConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.Nil(t, p.mp)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInit_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{"insecure", config.TelemetryConfig{Enabled: true, OTLPEndpoint: "localhost:4317", Insecure: true, SampleRate: 0.5}},
		{"tls", config.TelemetryConfig{Enabled: true, OTLPEndpoint: "localhost:4317"}},
		{"defaults service name and rate", config.TelemetryConfig{Enabled: true, OTLPEndpoint: "localhost:4317", Insecure: true, SampleRate: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keepGlobals(t)
			p, err := Init(context.Background(), tt.cfg, nil)
			require.NoError(t, err)
			shutdownLater(t, p)

			assert.True(t, p.Enabled())
			_, tpIsSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			_, mpIsSDK := otel.GetMeterProvider().(*sdkmetric.MeterProvider)
			assert.True(t, tpIsSDK)
			assert.True(t, mpIsSDK)
		})
	}
}

func TestProviders_ShutdownNil(t *testing.T) {
	var p *Providers
	assert.NoError(t, p.Shutdown(context.Background()))
	assert.False(t, p.Enabled())
}

func TestBuildVersion(t *testing.T) {
	// test binaries report "(devel)"
	assert.Equal(t, "dev", buildVersion())
}

func TestSpans(t *testing.T) {
	keepGlobals(t)
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	_, span := StartSpan(context.Background(), "fluxgen.generate", GenerationAttributes("flux", "anime", "ultra", 2)...)
	EndSpan(span, assert.AnError)
	_, span = StartSpan(context.Background(), "fluxgen.translate")
	EndSpan(span, nil)

	ended := rec.Ended()
	require.Len(t, ended, 2)

	gen := ended[0]
	assert.Equal(t, "fluxgen.generate", gen.Name())
	assert.Equal(t, codes.Error, gen.Status().Code)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("fluxgen.model", "flux"),
		attribute.String("fluxgen.style", "anime"),
		attribute.String("fluxgen.quality_mode", "ultra"),
		attribute.Int("fluxgen.outputs", 2),
	}, gen.Attributes())
	require.Len(t, gen.Events(), 1, "error recorded as event")

	assert.Equal(t, codes.Unset, ended[1].Status().Code)
}
