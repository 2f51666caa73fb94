package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/wellness-forecast/internal/api/validation"
	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/service"
	"github.com/blaisecz/wellness-forecast/pkg/pagination"
	"github.com/blaisecz/wellness-forecast/pkg/problem"
)

type DemoRequestHandler struct {
	service service.DemoRequestService
}

func NewDemoRequestHandler(service service.DemoRequestService) *DemoRequestHandler {
	return &DemoRequestHandler{service: service}
}

// Create handles POST /v1/demo-requests
// @Summary Request a demo
// @Description Capture an early-access request. Repeating the request with the same email is safe: returns 200 with the existing record, 201 if new.
// @Tags demo-requests
// @Accept json
// @Produce json
// @Param request body domain.CreateDemoRequest true "Demo request"
// @Success 201 {object} domain.DemoRequestResponse "Demo request captured"
// @Success 200 {object} domain.DemoRequestResponse "Existing request returned (idempotent duplicate)"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /demo-requests [post]
func (h *DemoRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	demo, isExisting, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Invalid demo request").Write(w)
			return
		}
		problem.InternalError("Failed to create demo request").Write(w)
		return
	}

	status := http.StatusCreated
	if isExisting {
		status = http.StatusOK // Return 200 for idempotent duplicate
	}
	writeJSON(w, status, demo.ToResponse())
}

// List handles GET /v1/demo-requests
// @Summary List demo requests
// @Description Fetch captured demo requests, newest first.
// @Tags demo-requests
// @Produce json
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.DemoRequestListResponse "Demo requests with pagination"
// @Failure 400 {object} problem.Problem "Invalid cursor"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /demo-requests [get]
func (h *DemoRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseIntParam(r, "limit", pagination.DefaultLimit)
	if !ok || limit < 1 {
		problem.ValidationError("Invalid query parameters", []problem.FieldError{{
			Field:   "limit",
			Message: "must be a positive integer",
		}}).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), domain.DemoRequestFilter{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Invalid cursor").Write(w)
			return
		}
		problem.InternalError("Failed to list demo requests").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
