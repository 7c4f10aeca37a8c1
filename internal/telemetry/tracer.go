package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/mixit-kr/gateway/internal/config"
)

const serviceName = "mixit-gateway"

// Init sets up the OpenTelemetry tracer provider with an OTLP HTTP exporter.
// Tracing is on only when OTEL_EXPORTER_OTLP_ENDPOINT is configured; without
// it Init returns (nil, nil) and the gateway runs untraced.
func Init(cfg *config.Config) (*sdktrace.TracerProvider, error) {
	if cfg.OTLPEndpoint == "" {
		return nil, nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	sampler := sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(sampleRatio(cfg.Environment, cfg.TraceSamplingRate)),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// sampleRatio clamps the configured head-sampling rate to (0, 1]. Development
// traces every request so local spans are never sampled away.
func sampleRatio(environment string, rate float64) float64 {
	if environment == "development" {
		return 1
	}
	if rate <= 0 {
		return 0.1
	}
	if rate > 1 {
		return 1
	}
	return rate
}
