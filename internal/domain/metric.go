package domain

import (
	"fmt"
	"math"
	"time"
)

// Threshold is the inclusive healthy range for a metric.
// @Description Healthy numeric range [low, high].
type Threshold struct {
	Low  float64 `json:"low" yaml:"low" example:"70"`
	High float64 `json:"high" yaml:"high" example:"95"`
}

// Contains reports whether v lies inside the healthy range.
func (t Threshold) Contains(v float64) bool {
	return v >= t.Low && v <= t.High
}

// MetricSeries is one tracked wellness indicator for the weekly report.
// Series are static snapshots: they are loaded once and never mutated.
// @Description Weekly wellness metric with history and previously recorded forecasts.
type MetricSeries struct {
	// Lookup key (sleep, activity, words, blood-pressure)
	ID string `gorm:"type:varchar(64);primaryKey" json:"id" yaml:"id" example:"sleep"`
	// Display name
	Name string `gorm:"type:varchar(128);not null;uniqueIndex" json:"name" yaml:"name" example:"Sleep Quality"`
	// Display unit
	Unit string `gorm:"type:varchar(64);not null" json:"unit" yaml:"unit" example:"Score"`
	// Score shown on the dashboard card for this week
	UserScore string `gorm:"type:varchar(32)" json:"user_score" yaml:"user_score" example:"65"`
	// Population average score
	AvgScore string `gorm:"type:varchar(32)" json:"avg_score" yaml:"avg_score" example:"82"`
	// Score of the previous week
	PreviousScore string `gorm:"type:varchar(32)" json:"previous_score" yaml:"previous_score" example:"78"`
	// Healthy range; absent for non-range metrics
	Threshold *Threshold `gorm:"serializer:json" json:"threshold,omitempty" yaml:"threshold,omitempty"`
	// Narrative analysis of the week
	Analysis string `gorm:"type:text" json:"analysis" yaml:"analysis"`
	// Warning shown when the metric is out of range
	Warning string `gorm:"type:text" json:"warning,omitempty" yaml:"warning,omitempty"`
	// Advisory shown only when actual deviates >15% from the previous forecast
	DiscrepancyWarning string `gorm:"type:text" json:"discrepancy_warning,omitempty" yaml:"discrepancy_warning,omitempty"`
	// Static recommendation used when no LLM is configured
	Recommendation string `gorm:"type:text" json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	// Weekly observations, oldest first
	History []float64 `gorm:"serializer:json;not null" json:"history" yaml:"history" example:"78,80,75,79,72,76,78,65"`
	// Previously predicted values aligned with History; null for weeks before forecasting began
	PreviousForecast []*float64 `gorm:"serializer:json" json:"previous_forecast" yaml:"previous_forecast"`
	// Display order on the dashboard
	Position  int       `gorm:"not null;default:0" json:"-" yaml:"position,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-" yaml:"-"`
}

func (MetricSeries) TableName() string {
	return "metric_series"
}

// LastActual returns the most recent observation.
func (m *MetricSeries) LastActual() (float64, bool) {
	if len(m.History) == 0 {
		return 0, false
	}
	v := m.History[len(m.History)-1]
	if !isFinite(v) {
		return 0, false
	}
	return v, true
}

// LastPreviousForecast returns the forecast recorded for the most recent week.
func (m *MetricSeries) LastPreviousForecast() (float64, bool) {
	if len(m.PreviousForecast) == 0 {
		return 0, false
	}
	v := m.PreviousForecast[len(m.PreviousForecast)-1]
	if v == nil || !isFinite(*v) {
		return 0, false
	}
	return *v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the structural invariants of a fixture.
func (m *MetricSeries) Validate() error {
	if m.ID == "" || m.Name == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidInput)
	}
	if len(m.PreviousForecast) > 0 && len(m.PreviousForecast) != len(m.History) {
		return fmt.Errorf("%w: metric %s has %d history points and %d forecasts",
			ErrSeriesMismatch, m.ID, len(m.History), len(m.PreviousForecast))
	}
	if m.Threshold != nil && m.Threshold.Low > m.Threshold.High {
		return fmt.Errorf("%w: metric %s", ErrInvalidThreshold, m.ID)
	}
	return nil
}

// Float returns a pointer to v. Handy for building PreviousForecast slices.
func Float(v float64) *float64 {
	return &v
}
