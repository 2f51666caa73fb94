package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span for each HTTP request, continuing any
// incoming W3C trace context. The span is renamed to the matched route
// once the handler has run.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("wellness-api/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(parent, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		setJSONAttr(span, telemetry.AttrObservationInput, requestPayload(r))

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rw, r.WithContext(ctx))

		route := routePattern(r)
		span.SetName(r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", rw.status),
		)
		if rw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rw.status))
		}

		setJSONAttr(span, telemetry.AttrObservationOutput, map[string]any{
			"status_code": rw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func requestPayload(r *http.Request) map[string]any {
	payload := map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if r.URL.RawQuery != "" {
		payload["query"] = r.URL.RawQuery
	}
	if id := r.Header.Get(RequestIDHeader); id != "" {
		payload["request_id"] = id
	}
	return payload
}

func setJSONAttr(span trace.Span, key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		span.SetAttributes(attribute.String(key, string(data)))
	}
}
