package domain

import (
	"time"

	"github.com/google/uuid"
)

// DemoRequest is an early-access request captured by the landing page.
type DemoRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(320);not null;uniqueIndex" json:"email"`
	Source    string    `gorm:"type:varchar(64);not null;default:'landing'" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_demo_requests_created,sort:desc" json:"created_at"`
}

func (DemoRequest) TableName() string {
	return "demo_requests"
}

// CreateDemoRequest is the request body for requesting a demo.
// @Description Request payload for the "Request a Demo" form.
type CreateDemoRequest struct {
	// Contact email address
	Email string `json:"email" validate:"required,email,max=320" example:"your.email@example.com"`
	// Page section that captured the request (hero, cta, navigation)
	Source string `json:"source,omitempty" validate:"omitempty,max=64" example:"hero"`
}

// DemoRequestResponse is the response body for demo request endpoints.
// @Description Captured demo request.
type DemoRequestResponse struct {
	ID        uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email     string    `json:"email" example:"your.email@example.com"`
	Source    string    `json:"source" example:"hero"`
	CreatedAt time.Time `json:"created_at" example:"2025-09-22T10:00:00Z"`
}

func (d *DemoRequest) ToResponse() DemoRequestResponse {
	return DemoRequestResponse{
		ID:        d.ID,
		Email:     d.Email,
		Source:    d.Source,
		CreatedAt: d.CreatedAt,
	}
}

// DemoRequestListResponse is the response body for listing demo requests.
// @Description Paginated list of demo requests.
type DemoRequestListResponse struct {
	Data       []DemoRequestResponse `json:"data"`
	Pagination PaginationResponse    `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6IjU1MGU4NDAwLWUyOWItNDFkNC1hNzE2LTQ0NjY1NTQ0MDAwMCJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// DemoRequestFilter contains filter parameters for listing demo requests
type DemoRequestFilter struct {
	Limit  int
	Cursor string
}
