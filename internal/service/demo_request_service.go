package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/metrics"
	"github.com/blaisecz/wellness-forecast/internal/repository"
	"github.com/blaisecz/wellness-forecast/pkg/pagination"
)

const defaultDemoRequestSource = "landing"

type DemoRequestService interface {
	Create(ctx context.Context, req *domain.CreateDemoRequest) (*domain.DemoRequest, bool, error)
	List(ctx context.Context, filter domain.DemoRequestFilter) (*domain.DemoRequestListResponse, error)
}

type demoRequestService struct {
	repo repository.DemoRequestRepository
}

func NewDemoRequestService(repo repository.DemoRequestRepository) DemoRequestService {
	return &demoRequestService{repo: repo}
}

// Create records a demo request.
// Returns (request, isExisting, error) - isExisting is true if the email was already registered
func (s *demoRequestService) Create(ctx context.Context, req *domain.CreateDemoRequest) (*domain.DemoRequest, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, false, domain.ErrInvalidInput
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		metrics.DemoRequestsTotal.WithLabelValues("existing").Inc()
		return existing, true, nil
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultDemoRequestSource
	}

	demo := &domain.DemoRequest{
		Email:  email,
		Source: source,
	}
	if err := s.repo.Create(ctx, demo); err != nil {
		// Lost a race against a concurrent request for the same email
		if errors.Is(err, domain.ErrConflict) {
			existing, getErr := s.repo.GetByEmail(ctx, email)
			if getErr == nil && existing != nil {
				metrics.DemoRequestsTotal.WithLabelValues("existing").Inc()
				return existing, true, nil
			}
		}
		return nil, false, err
	}

	metrics.DemoRequestsTotal.WithLabelValues("created").Inc()
	return demo, false, nil
}

func (s *demoRequestService) List(ctx context.Context, filter domain.DemoRequestFilter) (*domain.DemoRequestListResponse, error) {
	if filter.Cursor != "" {
		if _, err := pagination.DecodeCursor(filter.Cursor); err != nil {
			return nil, fmt.Errorf("%w: invalid cursor", domain.ErrInvalidInput)
		}
	}

	reqs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, next, hasMore := pagination.Page(reqs, filter.Limit, func(d domain.DemoRequest) pagination.Cursor {
		return pagination.Cursor{ID: d.ID, CreatedAt: d.CreatedAt}
	})

	response := &domain.DemoRequestListResponse{
		Data: make([]domain.DemoRequestResponse, len(page)),
		Pagination: domain.PaginationResponse{
			NextCursor: next,
			HasMore:    hasMore,
		},
	}
	for i := range page {
		response.Data[i] = page[i].ToResponse()
	}

	return response, nil
}
