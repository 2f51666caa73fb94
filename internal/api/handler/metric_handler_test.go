package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/llm"
	"github.com/go-chi/chi/v5"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newMetricRouter(reports *MockReportService, recs *MockRecommendationService) *chi.Mux {
	handler := NewMetricHandler(reports, recs)
	r := chi.NewRouter()
	r.Get("/metrics", handler.List)
	r.Get("/metrics/{metricId}", handler.Get)
	r.Get("/metrics/{metricId}/forecast", handler.Forecast)
	r.Get("/metrics/{metricId}/chart", handler.Chart)
	r.Get("/metrics/{metricId}/recommendation", handler.Recommendation)
	return r
}

func TestMetricHandler_List(t *testing.T) {
	reports := &MockReportService{
		listFunc: func(ctx context.Context) ([]domain.MetricSeries, error) {
			return []domain.MetricSeries{sampleSeries()}, nil
		},
	}
	r := newMetricRouter(reports, &MockRecommendationService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response []domain.MetricSeries
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 1 || response[0].ID != "activity" {
		t.Errorf("unexpected metrics: %+v", response)
	}
	if response[0].PreviousForecast[0] != nil {
		t.Error("expected leading previous forecasts to stay null")
	}
}

func TestMetricHandler_Get(t *testing.T) {
	reports := &MockReportService{
		getFunc: func(ctx context.Context, id string) (*domain.MetricSeries, error) {
			if id != "activity" {
				return nil, domain.ErrNotFound
			}
			s := sampleSeries()
			return &s, nil
		},
	}
	r := newMetricRouter(reports, &MockRecommendationService{})

	tests := []struct {
		name           string
		path           string
		wantStatusCode int
	}{
		{"existing metric", "/metrics/activity", http.StatusOK},
		{"unknown metric", "/metrics/heart-rate", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestMetricHandler_Forecast(t *testing.T) {
	var gotMethod domain.ForecastMethod
	reports := &MockReportService{
		forecastFunc: func(ctx context.Context, id string, method domain.ForecastMethod) (*domain.MetricReport, error) {
			if id != "activity" {
				return nil, domain.ErrNotFound
			}
			gotMethod = method
			return &domain.MetricReport{
				MetricID:   id,
				Trend:      domain.TrendDownward,
				TrendLabel: "Declining",
				Projection: &domain.Projection{Method: domain.ForecastMethodTwoPoint, Slope: -2, Values: []float64{56, 54, 52}},
				Breach:     domain.ThresholdBreach{Breached: true, Boundary: domain.BoundaryBelowLow, Limit: 60},
				Alerts:     []domain.Alert{},
			}, nil
		},
	}
	r := newMetricRouter(reports, &MockRecommendationService{})

	tests := []struct {
		name           string
		path           string
		wantStatusCode int
		wantMethod     domain.ForecastMethod
	}{
		{"default method", "/metrics/activity/forecast", http.StatusOK, ""},
		{"two point", "/metrics/activity/forecast?method=two_point", http.StatusOK, domain.ForecastMethodTwoPoint},
		{"least squares", "/metrics/activity/forecast?method=least_squares", http.StatusOK, domain.ForecastMethodLeastSquares},
		{"unknown method", "/metrics/activity/forecast?method=linear", http.StatusUnprocessableEntity, ""},
		{"unknown metric", "/metrics/heart-rate/forecast", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMethod = ""
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
			if tt.wantStatusCode != http.StatusOK {
				return
			}
			if gotMethod != tt.wantMethod {
				t.Errorf("service got method %q, want %q", gotMethod, tt.wantMethod)
			}

			var report domain.MetricReport
			if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if report.Projection == nil || len(report.Projection.Values) != 3 {
				t.Errorf("expected three projected values, got %+v", report.Projection)
			}
			if !report.Breach.Breached || report.Breach.Boundary != domain.BoundaryBelowLow {
				t.Errorf("unexpected breach: %+v", report.Breach)
			}
		})
	}
}

func TestMetricHandler_Chart(t *testing.T) {
	reports := &MockReportService{
		chartFunc: func(ctx context.Context, id string, method domain.ForecastMethod) (*domain.ChartResponse, error) {
			points := make([]domain.ChartPoint, 11)
			for i := range points {
				points[i] = domain.ChartPoint{Week: i + 1, Label: fmt.Sprintf("W%d", i+1)}
			}
			return &domain.ChartResponse{MetricID: id, Points: points}, nil
		},
	}
	r := newMetricRouter(reports, &MockRecommendationService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/sleep/chart?method=two_point", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var chart domain.ChartResponse
	if err := json.NewDecoder(w.Body).Decode(&chart); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(chart.Points) != 11 || chart.Points[10].Label != "W11" {
		t.Errorf("unexpected chart points: %+v", chart.Points)
	}
}

func TestMetricHandler_Recommendation_Errors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatusCode int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"llm unavailable", llm.ErrOpenAIUnavailable, http.StatusServiceUnavailable},
		{"llm request failed", fmt.Errorf("%w: timeout", llm.ErrOpenAIRequest), http.StatusBadGateway},
		{"llm bad response", fmt.Errorf("%w: empty", llm.ErrOpenAIResponse), http.StatusBadGateway},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := &MockRecommendationService{
				recommendFunc: func(ctx context.Context, metricID string) (*domain.Recommendation, error) {
					return nil, tt.err
				},
			}
			r := newMetricRouter(&MockReportService{}, recs)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/sleep/recommendation", nil))

			if w.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, w.Code)
			}
		})
	}
}

func TestMetricHandler_Recommendation_IncludesTraceID(t *testing.T) {
	r := newMetricRouter(&MockReportService{}, &MockRecommendationService{})

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	req := httptest.NewRequest(http.MethodGet, "/metrics/sleep/recommendation", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response domain.Recommendation
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.TraceID != span.SpanContext().TraceID().String() {
		t.Errorf("expected trace_id %s, got %q", span.SpanContext().TraceID(), response.TraceID)
	}
}

func TestMetricHandler_Recommendation_NoTraceIDWithoutSpan(t *testing.T) {
	r := newMetricRouter(&MockReportService{}, &MockRecommendationService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics/sleep/recommendation", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `"trace_id"`) {
		t.Error("expected trace_id to be omitted without an active span")
	}
}
