package handler

import (
	"net/http"

	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/service"
	"github.com/blaisecz/wellness-forecast/internal/web/components"
	"github.com/blaisecz/wellness-forecast/pkg/problem"
)

// PageHandler renders the server-side weekly report dashboard.
type PageHandler struct {
	reports service.ReportService
}

func NewPageHandler(reports service.ReportService) *PageHandler {
	return &PageHandler{reports: reports}
}

// Report handles GET /
func (h *PageHandler) Report(w http.ResponseWriter, r *http.Request) {
	method, fieldErrors := parseMethod(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	metrics, err := h.reports.ListMetrics(r.Context())
	if err != nil {
		problem.InternalError("Failed to load metrics").Write(w)
		return
	}
	report, err := h.reports.Weekly(r.Context(), method)
	if err != nil {
		problem.InternalError("Failed to build weekly report").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.WeeklyReportPage(report, metrics).Render(w); err != nil {
		log := logger.WithComponent("page_handler")
		log.Error().Err(err).Msg("failed to render report page")
	}
}
