package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/events"
	"github.com/blaisecz/wellness-forecast/internal/forecast"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/metrics"
	"github.com/blaisecz/wellness-forecast/internal/repository"
	"github.com/blaisecz/wellness-forecast/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReportService runs the forecast engine over stored metrics.
// An empty method argument selects the configured default.
type ReportService interface {
	ListMetrics(ctx context.Context) ([]domain.MetricSeries, error)
	GetMetric(ctx context.Context, id string) (*domain.MetricSeries, error)
	Forecast(ctx context.Context, id string, method domain.ForecastMethod) (*domain.MetricReport, error)
	Chart(ctx context.Context, id string, method domain.ForecastMethod) (*domain.ChartResponse, error)
	Weekly(ctx context.Context, method domain.ForecastMethod) (*domain.WeeklyReport, error)
}

// ReportOptions configures a ReportService.
type ReportOptions struct {
	DefaultMethod domain.ForecastMethod
	// Week covered by the stored snapshot
	WeekStart time.Time
	WeekEnd   time.Time
}

type reportService struct {
	repo      repository.MetricRepository
	publisher events.AlertPublisher
	opts      ReportOptions
	now       func() time.Time
}

// NewReportService creates a new ReportService. A nil publisher disables
// alert publishing. Publish is called on the request path, so production
// wiring passes an events.AsyncPublisher.
func NewReportService(repo repository.MetricRepository, publisher events.AlertPublisher, opts ReportOptions) ReportService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if opts.DefaultMethod == "" {
		opts.DefaultMethod = domain.ForecastMethodLeastSquares
	}
	return &reportService{
		repo:      repo,
		publisher: publisher,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) ListMetrics(ctx context.Context) ([]domain.MetricSeries, error) {
	return s.repo.List(ctx)
}

func (s *reportService) GetMetric(ctx context.Context, id string) (*domain.MetricSeries, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reportService) Forecast(ctx context.Context, id string, method domain.ForecastMethod) (*domain.MetricReport, error) {
	method = s.method(method)

	tracer := otel.Tracer("wellness-api/report")
	ctx, span := tracer.Start(ctx, "ReportService.Forecast",
		trace.WithAttributes(
			attribute.String("metric.id", id),
			attribute.String("forecast.method", string(method)),
		),
	)
	defer span.End()

	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setObservation(span, telemetry.AttrObservationInput, series)

	report := forecast.Analyze(*series, method)
	setObservation(span, telemetry.AttrObservationOutput, report)
	span.SetAttributes(attribute.Int("alerts.count", len(report.Alerts)))

	metrics.ReportsGenerated.WithLabelValues("metric", string(method)).Inc()
	s.emit(ctx, method, report)

	return &report, nil
}

func (s *reportService) Chart(ctx context.Context, id string, method domain.ForecastMethod) (*domain.ChartResponse, error) {
	method = s.method(method)

	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var proj *domain.Projection
	if p, ok := forecast.Project(series.History, method); ok {
		proj = &p
	}

	return &domain.ChartResponse{
		MetricID: series.ID,
		Metric:   series.Name,
		Unit:     series.Unit,
		Points:   forecast.ChartData(*series, proj),
	}, nil
}

func (s *reportService) Weekly(ctx context.Context, method domain.ForecastMethod) (*domain.WeeklyReport, error) {
	method = s.method(method)

	tracer := otel.Tracer("wellness-api/report")
	ctx, span := tracer.Start(ctx, "ReportService.Weekly",
		trace.WithAttributes(attribute.String("forecast.method", string(method))),
	)
	defer span.End()

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("metrics.count", len(list)))

	report := &domain.WeeklyReport{
		WeekStart:   s.opts.WeekStart,
		WeekEnd:     s.opts.WeekEnd,
		Method:      method,
		GeneratedAt: s.now(),
		Metrics:     make([]domain.MetricReport, 0, len(list)),
	}
	for _, series := range list {
		r := forecast.Analyze(series, method)
		report.Metrics = append(report.Metrics, r)
		report.AlertCount += len(r.Alerts)
	}
	s.emit(ctx, method, report.Metrics...)

	setObservation(span, telemetry.AttrObservationOutput, report)
	span.SetAttributes(attribute.Int("alerts.count", report.AlertCount))
	metrics.ReportsGenerated.WithLabelValues("weekly", string(method)).Inc()

	return report, nil
}

func (s *reportService) method(m domain.ForecastMethod) domain.ForecastMethod {
	if m == "" {
		return s.opts.DefaultMethod
	}
	return m
}

// emit counts the reports' alerts and publishes them as one batch.
// Publishing failures are logged and never fail the request.
func (s *reportService) emit(ctx context.Context, method domain.ForecastMethod, reports ...domain.MetricReport) {
	var batch []events.AlertEvent
	at := s.now()
	for _, r := range reports {
		for _, a := range r.Alerts {
			metrics.AlertsEmitted.WithLabelValues(string(a.Kind), string(a.Severity)).Inc()
		}
		batch = append(batch, events.FromReport(r, method, at)...)
	}
	if len(batch) == 0 {
		return
	}

	if err := s.publisher.Publish(ctx, batch); err != nil {
		log := logger.WithComponent("report_service")
		log.Warn().
			Err(err).
			Int("reports", len(reports)).
			Int("alerts", len(batch)).
			Msg("failed to publish alerts")
	}
}

func setObservation(span trace.Span, key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		span.SetAttributes(attribute.String(key, string(data)))
	}
}
