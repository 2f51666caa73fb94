package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DemoRequestRepository interface {
	Create(ctx context.Context, req *domain.DemoRequest) error
	GetByEmail(ctx context.Context, email string) (*domain.DemoRequest, error)
	List(ctx context.Context, filter domain.DemoRequestFilter) ([]domain.DemoRequest, error)
}

type demoRequestRepository struct {
	db *gorm.DB
}

func NewDemoRequestRepository(db *gorm.DB) DemoRequestRepository {
	return &demoRequestRepository{db: db}
}

// Create inserts req. A concurrent insert of the same email yields domain.ErrConflict.
func (r *demoRequestRepository) Create(ctx context.Context, req *domain.DemoRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *demoRequestRepository) GetByEmail(ctx context.Context, email string) (*domain.DemoRequest, error) {
	var req domain.DemoRequest
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Not found is not an error for idempotency check
		}
		return nil, err
	}
	return &req, nil
}

func (r *demoRequestRepository) List(ctx context.Context, filter domain.DemoRequestFilter) ([]domain.DemoRequest, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			query = query.Where(
				"(created_at < ?) OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var reqs []domain.DemoRequest
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

type memoryDemoRequestRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.DemoRequest
	now     func() time.Time
}

// NewMemoryDemoRequestRepository keeps demo requests in process memory.
func NewMemoryDemoRequestRepository() DemoRequestRepository {
	return &memoryDemoRequestRepository{
		byEmail: make(map[string]domain.DemoRequest),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryDemoRequestRepository) Create(ctx context.Context, req *domain.DemoRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[req.Email]; ok {
		return domain.ErrConflict
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.now()
	}
	r.byEmail[req.Email] = *req
	return nil
}

func (r *memoryDemoRequestRepository) GetByEmail(ctx context.Context, email string) (*domain.DemoRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *memoryDemoRequestRepository) List(ctx context.Context, filter domain.DemoRequestFilter) ([]domain.DemoRequest, error) {
	var cursor *pagination.Cursor
	if filter.Cursor != "" {
		if c, err := pagination.DecodeCursor(filter.Cursor); err == nil {
			cursor = c
		}
	}

	r.mu.RLock()
	all := make([]domain.DemoRequest, 0, len(r.byEmail))
	for _, req := range r.byEmail {
		if cursor.Includes(req.CreatedAt, req.ID) {
			all = append(all, req)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return strings.Compare(all[i].ID.String(), all[j].ID.String()) > 0
	})

	limit := pagination.NormalizeLimit(filter.Limit)
	if len(all) > limit+1 {
		all = all[:limit+1]
	}
	return all, nil
}
