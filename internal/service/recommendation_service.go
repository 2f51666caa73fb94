package service

import (
	"context"
	"errors"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/langfuse"
	"github.com/blaisecz/wellness-forecast/internal/llm"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/metrics"
	"github.com/blaisecz/wellness-forecast/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecommendationService produces the "AI Recommendation" for a metric.
type RecommendationService interface {
	Recommend(ctx context.Context, metricID string) (*domain.Recommendation, error)
}

type recommendationService struct {
	reports   ReportService
	llmClient llm.RecommendationLLM
	langfuse  langfuse.Client
}

// NewRecommendationService creates a new RecommendationService.
// Without a configured LLM the metric's stored recommendation is returned.
func NewRecommendationService(reports ReportService, llmClient llm.RecommendationLLM, lf langfuse.Client) RecommendationService {
	return &recommendationService{
		reports:   reports,
		llmClient: llmClient,
		langfuse:  lf,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, metricID string) (*domain.Recommendation, error) {
	tracer := otel.Tracer("wellness-api/recommendation")
	ctx, span := tracer.Start(ctx, "RecommendationService.Recommend",
		trace.WithAttributes(attribute.String("metric.id", metricID)),
	)
	defer span.End()

	series, err := s.reports.GetMetric(ctx, metricID)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.Forecast(ctx, metricID, "")
	if err != nil {
		return nil, err
	}

	recCtx := &domain.RecommendationContext{Metric: *series, Forecast: *report}
	setObservation(span, telemetry.AttrObservationInput, recCtx)

	if s.llmClient == nil {
		return s.static(series), nil
	}

	output, err := s.llmClient.GenerateRecommendation(ctx, recCtx)
	if err != nil {
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			return s.static(series), nil
		}
		span.RecordError(err)
		log := logger.WithComponent("recommendation_service")
		log.Error().
			Err(err).
			Str("metric_id", metricID).
			Msg("llm recommendation failed")
		return nil, err
	}
	setObservation(span, telemetry.AttrObservationOutput, output)

	rec := &domain.Recommendation{
		MetricID:       series.ID,
		Source:         domain.RecommendationSourceLLM,
		Recommendation: *output,
	}

	if s.langfuse != nil && s.langfuse.IsEnabled() {
		metadata := map[string]any{"trend": string(report.Trend)}
		if report.Projection != nil {
			metadata["method"] = string(report.Projection.Method)
		}
		traceID, err := s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
			Name:     "metric-recommendation",
			Input:    recCtx,
			Output:   output,
			Tags:     []string{"wellness-forecast", series.ID},
			Metadata: metadata,
		})
		if err == nil {
			rec.TraceID = traceID
		}
	}

	metrics.RecommendationsGenerated.WithLabelValues(string(domain.RecommendationSourceLLM)).Inc()
	return rec, nil
}

func (s *recommendationService) static(series *domain.MetricSeries) *domain.Recommendation {
	out := domain.LLMRecommendationOutput{Summary: series.Analysis, Actions: []string{}}
	if series.Recommendation != "" {
		out.Actions = append(out.Actions, series.Recommendation)
	}
	metrics.RecommendationsGenerated.WithLabelValues(string(domain.RecommendationSourceStatic)).Inc()
	return &domain.Recommendation{
		MetricID:       series.ID,
		Source:         domain.RecommendationSourceStatic,
		Recommendation: out,
	}
}
