package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/llm"
)

func TestRecommendationService_StaticFallback(t *testing.T) {
	reports := newTestReportService(&MockPublisher{}, domain.ForecastMethodLeastSquares)

	tests := []struct {
		name string
		llm  llm.RecommendationLLM
	}{
		{"no llm configured", nil},
		{"llm unavailable", &MockRecommendationLLM{err: fmt.Errorf("wrapped: %w", llm.ErrOpenAIUnavailable)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRecommendationService(reports, tt.llm, &MockLangfuseClient{})

			rec, err := svc.Recommend(context.Background(), "blood-pressure")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Source != domain.RecommendationSourceStatic {
				t.Fatalf("expected static source, got %s", rec.Source)
			}
			if len(rec.Recommendation.Actions) != 1 || rec.Recommendation.Summary == "" {
				t.Fatalf("unexpected recommendation: %+v", rec.Recommendation)
			}
			if rec.TraceID != "" {
				t.Fatalf("static recommendations carry no trace id")
			}
		})
	}
}

func TestRecommendationService_StaticWithoutStoredText(t *testing.T) {
	reports := newTestReportService(&MockPublisher{}, domain.ForecastMethodLeastSquares)
	svc := NewRecommendationService(reports, nil, nil)

	rec, err := svc.Recommend(context.Background(), "words")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Recommendation.Actions == nil || len(rec.Recommendation.Actions) != 0 {
		t.Fatalf("expected empty, non-nil actions, got %#v", rec.Recommendation.Actions)
	}
}

func TestRecommendationService_LLM(t *testing.T) {
	reports := newTestReportService(&MockPublisher{}, domain.ForecastMethodLeastSquares)
	mockLLM := &MockRecommendationLLM{output: &domain.LLMRecommendationOutput{
		Summary: "Activity keeps slipping.",
		Actions: []string{"Walk after lunch"},
	}}
	lf := &MockLangfuseClient{enabled: true}
	svc := NewRecommendationService(reports, mockLLM, lf)

	rec, err := svc.Recommend(context.Background(), "activity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Source != domain.RecommendationSourceLLM || rec.Recommendation.Summary != "Activity keeps slipping." {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}
	if rec.TraceID != "trace-metric-recommendation" {
		t.Fatalf("expected langfuse trace id, got %q", rec.TraceID)
	}

	if mockLLM.received == nil || mockLLM.received.Metric.ID != "activity" {
		t.Fatalf("llm did not receive metric context")
	}
	if mockLLM.received.Forecast.Projection == nil {
		t.Fatalf("llm did not receive forecast")
	}
	if len(lf.traces) != 1 || lf.traces[0].Metadata["method"] != string(domain.ForecastMethodLeastSquares) {
		t.Fatalf("unexpected traces: %+v", lf.traces)
	}
}

func TestRecommendationService_Errors(t *testing.T) {
	reports := newTestReportService(&MockPublisher{}, domain.ForecastMethodLeastSquares)

	svc := NewRecommendationService(reports, &MockRecommendationLLM{err: llm.ErrOpenAIRequest}, nil)
	if _, err := svc.Recommend(context.Background(), "sleep"); !errors.Is(err, llm.ErrOpenAIRequest) {
		t.Fatalf("expected ErrOpenAIRequest, got %v", err)
	}

	if _, err := svc.Recommend(context.Background(), "steps"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
