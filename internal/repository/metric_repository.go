package repository

import (
	"context"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"gorm.io/gorm"
)

type MetricRepository interface {
	List(ctx context.Context) ([]domain.MetricSeries, error)
	GetByID(ctx context.Context, id string) (*domain.MetricSeries, error)
}

type metricRepository struct {
	db *gorm.DB
}

// NewMetricRepository returns a postgres-backed MetricRepository.
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) List(ctx context.Context) ([]domain.MetricSeries, error) {
	var series []domain.MetricSeries
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

func (r *metricRepository) GetByID(ctx context.Context, id string) (*domain.MetricSeries, error) {
	var series domain.MetricSeries
	err := r.db.WithContext(ctx).First(&series, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &series, nil
}

type fixtureMetricRepository struct {
	series []domain.MetricSeries
	byID   map[string]int
}

// NewFixtureMetricRepository serves a fixed set of metrics from memory.
// Every series is validated up front; callers receive copies.
func NewFixtureMetricRepository(series []domain.MetricSeries) (MetricRepository, error) {
	r := &fixtureMetricRepository{
		series: make([]domain.MetricSeries, 0, len(series)),
		byID:   make(map[string]int, len(series)),
	}
	for _, s := range series {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, domain.ErrConflict
		}
		r.byID[s.ID] = len(r.series)
		r.series = append(r.series, cloneSeries(s))
	}
	return r, nil
}

func (r *fixtureMetricRepository) List(ctx context.Context) ([]domain.MetricSeries, error) {
	out := make([]domain.MetricSeries, len(r.series))
	for i, s := range r.series {
		out[i] = cloneSeries(s)
	}
	return out, nil
}

func (r *fixtureMetricRepository) GetByID(ctx context.Context, id string) (*domain.MetricSeries, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s := cloneSeries(r.series[i])
	return &s, nil
}

func cloneSeries(s domain.MetricSeries) domain.MetricSeries {
	s.History = append([]float64(nil), s.History...)
	if s.PreviousForecast != nil {
		pf := make([]*float64, len(s.PreviousForecast))
		for i, v := range s.PreviousForecast {
			if v != nil {
				pf[i] = domain.Float(*v)
			}
		}
		s.PreviousForecast = pf
	}
	if s.Threshold != nil {
		t := *s.Threshold
		s.Threshold = &t
	}
	return s
}
