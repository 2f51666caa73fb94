package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/wellness-forecast/internal/api/validation"
	"github.com/blaisecz/wellness-forecast/internal/langfuse"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/service"
	"github.com/blaisecz/wellness-forecast/pkg/problem"
)

// ReportHandler serves the weekly report and recommendation feedback.
type ReportHandler struct {
	reports        service.ReportService
	langfuseClient langfuse.Client
}

func NewReportHandler(reports service.ReportService, langfuseClient langfuse.Client) *ReportHandler {
	return &ReportHandler{
		reports:        reports,
		langfuseClient: langfuseClient,
	}
}

// GetWeekly handles GET /v1/reports/weekly
// @Summary Weekly report
// @Description Run the forecast analysis over every metric for the report week.
// @Tags reports
// @Produce json
// @Param method query string false "Projection method" Enums(two_point, least_squares)
// @Success 200 {object} domain.WeeklyReport "Weekly report"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /reports/weekly [get]
func (h *ReportHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	method, fieldErrors := parseMethod(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	report, err := h.reports.Weekly(r.Context(), method)
	if err != nil {
		problem.InternalError("Failed to build weekly report").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// FeedbackRequest is the request body for recommendation feedback.
// @Description Request body for rating a recommendation.
type FeedbackRequest struct {
	// Trace ID from the recommendation response
	TraceID string `json:"trace_id" validate:"required,max=128" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"max=1000" example:"The recommendation was helpful!"`
}

// PostFeedback handles POST /v1/reports/feedback
// @Summary Submit recommendation feedback
// @Description Submit a user rating and optional comment for a previous recommendation.
// @Tags reports
// @Accept json
// @Param body body FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Router /reports/feedback [post]
func (h *ReportHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	// Feedback is accepted even when Langfuse is disabled or unreachable
	if err := h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	}); err != nil {
		log := logger.WithComponent("report_handler")
		log.Warn().
			Err(err).
			Str("trace_id", req.TraceID).
			Msg("failed to record feedback score")
	}

	w.WriteHeader(http.StatusNoContent)
}
