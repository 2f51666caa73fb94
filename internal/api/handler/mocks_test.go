package handler

import (
	"context"
	"errors"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/langfuse"
)

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	listFunc     func(ctx context.Context) ([]domain.MetricSeries, error)
	getFunc      func(ctx context.Context, id string) (*domain.MetricSeries, error)
	forecastFunc func(ctx context.Context, id string, method domain.ForecastMethod) (*domain.MetricReport, error)
	chartFunc    func(ctx context.Context, id string, method domain.ForecastMethod) (*domain.ChartResponse, error)
	weeklyFunc   func(ctx context.Context, method domain.ForecastMethod) (*domain.WeeklyReport, error)
}

func (m *MockReportService) ListMetrics(ctx context.Context) ([]domain.MetricSeries, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.MetricSeries{}, nil
}

func (m *MockReportService) GetMetric(ctx context.Context, id string) (*domain.MetricSeries, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockReportService) Forecast(ctx context.Context, id string, method domain.ForecastMethod) (*domain.MetricReport, error) {
	if m.forecastFunc != nil {
		return m.forecastFunc(ctx, id, method)
	}
	return nil, domain.ErrNotFound
}

func (m *MockReportService) Chart(ctx context.Context, id string, method domain.ForecastMethod) (*domain.ChartResponse, error) {
	if m.chartFunc != nil {
		return m.chartFunc(ctx, id, method)
	}
	return nil, domain.ErrNotFound
}

func (m *MockReportService) Weekly(ctx context.Context, method domain.ForecastMethod) (*domain.WeeklyReport, error) {
	if m.weeklyFunc != nil {
		return m.weeklyFunc(ctx, method)
	}
	return &domain.WeeklyReport{
		WeekStart: time.Date(2025, time.September, 16, 0, 0, 0, 0, time.UTC),
		WeekEnd:   time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC),
		Method:    domain.ForecastMethodLeastSquares,
		Metrics:   []domain.MetricReport{},
	}, nil
}

// MockRecommendationService is a mock implementation of RecommendationService
type MockRecommendationService struct {
	recommendFunc func(ctx context.Context, metricID string) (*domain.Recommendation, error)
}

func (m *MockRecommendationService) Recommend(ctx context.Context, metricID string) (*domain.Recommendation, error) {
	if m.recommendFunc != nil {
		return m.recommendFunc(ctx, metricID)
	}
	return &domain.Recommendation{
		MetricID: metricID,
		Source:   domain.RecommendationSourceStatic,
		Recommendation: domain.LLMRecommendationOutput{
			Summary: "Your sleep was worse than forecast.",
			Actions: []string{"Keep a regular sleep schedule"},
		},
	}, nil
}

// MockDemoRequestService is a mock implementation of DemoRequestService
type MockDemoRequestService struct {
	createFunc func(ctx context.Context, req *domain.CreateDemoRequest) (*domain.DemoRequest, bool, error)
	listFunc   func(ctx context.Context, filter domain.DemoRequestFilter) (*domain.DemoRequestListResponse, error)
}

func (m *MockDemoRequestService) Create(ctx context.Context, req *domain.CreateDemoRequest) (*domain.DemoRequest, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, false, errors.New("not implemented")
}

func (m *MockDemoRequestService) List(ctx context.Context, filter domain.DemoRequestFilter) (*domain.DemoRequestListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return &domain.DemoRequestListResponse{Data: []domain.DemoRequestResponse{}}, nil
}

// mockLangfuseClient for testing
type mockLangfuseClient struct {
	enabled    bool
	scoreErr   error
	scoreCalls int
	lastScore  langfuse.ScoreInput
}

func (m *mockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return "", nil
}

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scoreCalls++
	m.lastScore = in
	return m.scoreErr
}

func (m *mockLangfuseClient) Close(ctx context.Context) error {
	return nil
}

func sampleSeries() domain.MetricSeries {
	return domain.MetricSeries{
		ID:               "activity",
		Name:             "Physical Activity",
		Unit:             "Score",
		UserScore:        "58",
		AvgScore:         "70",
		Threshold:        &domain.Threshold{Low: 60, High: 95},
		History:          []float64{70, 68, 69, 65, 64, 62, 60, 58},
		PreviousForecast: []*float64{nil, nil, nil, nil, nil, domain.Float(63), domain.Float(61), domain.Float(59)},
	}
}
