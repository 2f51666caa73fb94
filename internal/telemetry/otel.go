// Package telemetry configures OpenTelemetry tracing. Spans are exported to
// Langfuse's OTLP endpoint so HTTP requests, report generation and LLM calls
// show up next to the recommendation traces.
package telemetry

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/blaisecz/wellness-forecast/internal/config"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Span attribute keys understood by Langfuse's OTLP endpoint.
const (
	AttrObservationInput  = "langfuse.observation.input"
	AttrObservationOutput = "langfuse.observation.output"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

// InitTracer installs the W3C propagator and, when Langfuse credentials are
// set, a batching OTLP exporter. Without credentials spans stay no-op.
func InitTracer(ctx context.Context, cfg *config.Config, serviceName string) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.LangfuseBaseURL == "" || cfg.LangfusePublicKey == "" || cfg.LangfuseSecretKey == "" {
		return func(context.Context) error { return nil }, nil
	}

	endpoint := OTLPEndpoint(cfg.LangfuseBaseURL)
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": basicAuth(cfg.LangfusePublicKey, cfg.LangfuseSecretKey),
		}),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("deployment.environment", cfg.Env),
			attribute.String("langfuse.environment", cfg.LangfuseEnv),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.TraceSampleRatio)),
	)
	otel.SetTracerProvider(tp)

	log := logger.WithComponent("telemetry")
	log.Info().
		Str("endpoint", endpoint).
		Str("service", serviceName).
		Float64("sample_ratio", cfg.TraceSampleRatio).
		Msg("otel tracing enabled")

	return tp.Shutdown, nil
}

// OTLPEndpoint is the Langfuse trace ingestion URL for a base URL.
func OTLPEndpoint(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/api/public/otel/v1/traces"
}

// Sampler follows the parent's decision and samples root spans by ratio.
// Ratios outside (0, 1) are clamped by the SDK.
func Sampler(ratio float64) sdktrace.Sampler {
	if ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
