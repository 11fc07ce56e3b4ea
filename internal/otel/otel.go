package otel

import (
	"context"
	"time"

	"github.com/gebeta/delivery/internal/jaeger"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// OtelController owns the process-wide tracer provider.
type OtelController struct {
	traceProvider *sdktrace.TracerProvider
}

// MustInitOtel sets up tracing with the Jaeger exporter and installs the
// provider globally. The sample ratio comes from config; it defaults to
// keeping every trace.
func MustInitOtel() *OtelController {
	sampleRatio := viper.GetFloat64("tracing.sample_ratio")
	if sampleRatio == 0 {
		sampleRatio = 1
	}

	environment := viper.GetString("tracing.environment")
	if environment == "" {
		environment = "development"
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(jaeger.MustNewJaeger()),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("delivery-svc"),
			semconv.DeploymentEnvironmentKey.String(environment),
		)),
	)

	otel.SetTracerProvider(tp)

	return &OtelController{
		traceProvider: tp,
	}
}

// Shutdown flushes buffered spans. Bounded so a dead collector cannot hang
// process shutdown.
func (o *OtelController) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return o.traceProvider.Shutdown(ctx)
}
