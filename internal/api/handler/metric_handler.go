package handler

import (
	"errors"
	"net/http"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/llm"
	"github.com/blaisecz/wellness-forecast/internal/service"
	"github.com/blaisecz/wellness-forecast/pkg/problem"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// MetricHandler serves per-metric forecast endpoints.
type MetricHandler struct {
	reports         service.ReportService
	recommendations service.RecommendationService
}

func NewMetricHandler(reports service.ReportService, recommendations service.RecommendationService) *MetricHandler {
	return &MetricHandler{
		reports:         reports,
		recommendations: recommendations,
	}
}

// List handles GET /v1/metrics
// @Summary List metrics
// @Description List the tracked wellness metrics with their weekly history and previous forecasts, in dashboard order.
// @Tags metrics
// @Produce json
// @Success 200 {array} domain.MetricSeries "Tracked metrics"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /metrics [get]
func (h *MetricHandler) List(w http.ResponseWriter, r *http.Request) {
	series, err := h.reports.ListMetrics(r.Context())
	if err != nil {
		problem.InternalError("Failed to list metrics").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// Get handles GET /v1/metrics/{metricId}
// @Summary Get metric
// @Description Fetch one metric by its key.
// @Tags metrics
// @Produce json
// @Param metricId path string true "Metric key" example(sleep)
// @Success 200 {object} domain.MetricSeries "Metric"
// @Failure 404 {object} problem.Problem "Metric not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /metrics/{metricId} [get]
func (h *MetricHandler) Get(w http.ResponseWriter, r *http.Request) {
	series, err := h.reports.GetMetric(r.Context(), chi.URLParam(r, "metricId"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to get metric")
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// Forecast handles GET /v1/metrics/{metricId}/forecast
// @Summary Forecast metric
// @Description Project the next three weeks, classify the trend, check the healthy range, compare last week's forecast against the actual and compose the advisory alerts.
// @Tags metrics
// @Produce json
// @Param metricId path string true "Metric key" example(activity)
// @Param method query string false "Projection method" Enums(two_point, least_squares)
// @Success 200 {object} domain.MetricReport "Forecast analysis"
// @Failure 404 {object} problem.Problem "Metric not found"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /metrics/{metricId}/forecast [get]
func (h *MetricHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	method, fieldErrors := parseMethod(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	report, err := h.reports.Forecast(r.Context(), chi.URLParam(r, "metricId"), method)
	if err != nil {
		writeServiceError(w, r, err, "Failed to compute forecast")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Chart handles GET /v1/metrics/{metricId}/chart
// @Summary Chart data
// @Description Week-indexed history, previous forecasts, projection and threshold lines for charting.
// @Tags metrics
// @Produce json
// @Param metricId path string true "Metric key" example(sleep)
// @Param method query string false "Projection method" Enums(two_point, least_squares)
// @Success 200 {object} domain.ChartResponse "Chart data"
// @Failure 404 {object} problem.Problem "Metric not found"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /metrics/{metricId}/chart [get]
func (h *MetricHandler) Chart(w http.ResponseWriter, r *http.Request) {
	method, fieldErrors := parseMethod(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	chart, err := h.reports.Chart(r.Context(), chi.URLParam(r, "metricId"), method)
	if err != nil {
		writeServiceError(w, r, err, "Failed to build chart")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// Recommendation handles GET /v1/metrics/{metricId}/recommendation
// @Summary Get AI recommendation
// @Description Generate a recommendation for the metric using its forecast and the LLM. Falls back to the stored recommendation when no LLM is configured.
// @Tags metrics
// @Produce json
// @Param metricId path string true "Metric key" example(sleep)
// @Success 200 {object} domain.Recommendation "Recommendation"
// @Failure 404 {object} problem.Problem "Metric not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Failure 502 {object} problem.Problem "LLM error"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Router /metrics/{metricId}/recommendation [get]
func (h *MetricHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recommendations.Recommend(r.Context(), chi.URLParam(r, "metricId"))
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrOpenAIUnavailable):
			problem.ServiceUnavailable("OpenAI service is not configured").Write(w)
		case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
			problem.UpstreamError("Failed to generate recommendation from LLM").Write(w)
		default:
			writeServiceError(w, r, err, "Failed to generate recommendation")
		}
		return
	}

	// Attach OTEL trace ID (if present) for feedback linking
	if rec.TraceID == "" {
		if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.IsValid() {
			rec.TraceID = sc.TraceID().String()
		}
	}

	writeJSON(w, http.StatusOK, rec)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Metric not found").WithInstance(r.URL.Path).Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	default:
		problem.InternalError(detail).Write(w)
	}
}
