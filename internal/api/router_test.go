package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/wellness-forecast/internal/api/handler"
	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/langfuse"
	"github.com/blaisecz/wellness-forecast/internal/repository"
	"github.com/blaisecz/wellness-forecast/internal/seed"
	"github.com/blaisecz/wellness-forecast/internal/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	metricRepo, err := repository.NewFixtureMetricRepository(seed.Metrics())
	if err != nil {
		t.Fatalf("failed to build metric repository: %v", err)
	}

	reports := service.NewReportService(metricRepo, nil, service.ReportOptions{
		DefaultMethod: domain.ForecastMethodLeastSquares,
		WeekStart:     seed.ReportWeekStart,
		WeekEnd:       seed.ReportWeekEnd,
	})
	lf := langfuse.NewClient(langfuse.Config{})
	recommendations := service.NewRecommendationService(reports, nil, lf)
	demoRequests := service.NewDemoRequestService(repository.NewMemoryDemoRequestRepository())

	return NewRouter(
		handler.NewMetricHandler(reports, recommendations),
		handler.NewReportHandler(reports, lf),
		handler.NewDemoRequestHandler(demoRequests),
		handler.NewPageHandler(reports),
	).Setup()
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestRouter_ForecastEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/metrics/activity/forecast?method=two_point", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var report domain.MetricReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Projection == nil {
		t.Fatal("expected projection")
	}
	want := []float64{56, 54, 52}
	for i, v := range want {
		if report.Projection.Values[i] != v {
			t.Fatalf("projection = %v, want %v", report.Projection.Values, want)
		}
	}
	if report.Trend != domain.TrendDownward || !report.Breach.Breached {
		t.Errorf("unexpected trend/breach: %s %+v", report.Trend, report.Breach)
	}
}

func TestRouter_WeeklyReportAndPage(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports/weekly", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var report domain.WeeklyReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(report.Metrics) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(report.Metrics))
	}

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Sleep Quality") {
		t.Errorf("expected dashboard page, got %d", w.Code)
	}
}

func TestRouter_StaticRecommendation(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/metrics/sleep/recommendation", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var rec domain.Recommendation
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rec.Source != domain.RecommendationSourceStatic || len(rec.Recommendation.Actions) != 1 {
		t.Errorf("unexpected recommendation: %+v", rec)
	}
}

func TestRouter_DemoRequestIdempotent(t *testing.T) {
	srv := newTestServer(t)

	post := func(body string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/demo-requests", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		srv.ServeHTTP(w, req)
		return w.Code
	}

	if code := post(`{"email": "Your.Email@example.com", "source": "hero"}`); code != http.StatusCreated {
		t.Fatalf("first request: expected 201, got %d", code)
	}
	if code := post(`{"email": "your.email@example.com"}`); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/demo-requests", nil))

	var list domain.DemoRequestListResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Source != "hero" {
		t.Errorf("unexpected list: %+v", list.Data)
	}
}

func TestRouter_UnknownMetric(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/metrics/heart-rate/forecast", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "wellness_http_requests_total") {
		t.Error("expected http request counter to be exported")
	}
}
