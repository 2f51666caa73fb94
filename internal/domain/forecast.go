package domain

import (
	"fmt"
	"time"
)

// ForecastMethod selects how the future projection is derived from history.
// @Description Projection method: two_point (last two points) or least_squares (fit over last four points).
type ForecastMethod string

const (
	ForecastMethodTwoPoint     ForecastMethod = "two_point"
	ForecastMethodLeastSquares ForecastMethod = "least_squares"
)

// ParseForecastMethod maps a query or config value to a ForecastMethod.
// An empty string yields the fallback.
func ParseForecastMethod(s string, fallback ForecastMethod) (ForecastMethod, error) {
	switch ForecastMethod(s) {
	case "":
		return fallback, nil
	case ForecastMethodTwoPoint, ForecastMethodLeastSquares:
		return ForecastMethod(s), nil
	default:
		return "", fmt.Errorf("%w: unknown forecast method %q", ErrInvalidInput, s)
	}
}

// Trend is the direction of a projected sequence.
type Trend string

const (
	TrendDownward Trend = "downward"
	TrendUpward   Trend = "upward"
	TrendStable   Trend = "stable"
)

// Label is the dashboard badge text for the trend.
func (t Trend) Label() string {
	switch t {
	case TrendUpward:
		return "Improving"
	case TrendDownward:
		return "Declining"
	default:
		return "Stable"
	}
}

// Boundary identifies which side of the healthy range a projection crossed.
type Boundary string

const (
	BoundaryNone      Boundary = "none"
	BoundaryBelowLow  Boundary = "below_low"
	BoundaryAboveHigh Boundary = "above_high"
)

// ThresholdBreach is the result of checking a projection against a threshold.
// @Description Whether the projection leaves the healthy range and on which side.
type ThresholdBreach struct {
	Breached bool     `json:"breached" example:"true"`
	Boundary Boundary `json:"boundary" example:"below_low"`
	// The crossed limit (threshold low or high); zero when not breached
	Limit float64 `json:"limit,omitempty" example:"60"`
}

// Projection is the short-term future forecast for a metric.
// @Description Three projected weekly values.
type Projection struct {
	Method ForecastMethod `json:"method" example:"least_squares"`
	// Per-week slope of the fitted line
	Slope float64 `json:"slope" example:"-2"`
	// Projected values, rounded to the nearest integer
	Values []float64 `json:"values" example:"56,54,52"`
}

// Discrepancy is a >15% deviation between last actual and last previous forecast.
// @Description Deviation between actual and previously forecast value.
type Discrepancy struct {
	Actual             float64 `json:"actual" example:"65"`
	Forecast           float64 `json:"forecast" example:"78"`
	RelativeDifference float64 `json:"relative_difference" example:"-0.1667"`
	// True when the actual exceeded the forecast
	Positive bool   `json:"positive" example:"false"`
	Text     string `json:"text"`
}

// Direction of an actual value relative to its forecast.
type Direction string

const (
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
)

// ForecastComparison compares last week's actual value against its forecast.
// @Description Last week's forecast versus actual.
type ForecastComparison struct {
	Forecast    float64 `json:"forecast" example:"120"`
	Actual      float64 `json:"actual" example:"121"`
	WithinRange bool    `json:"within_range" example:"true"`
	// Absolute difference; zero when within range
	Difference float64   `json:"difference,omitempty" example:"13"`
	Direction  Direction `json:"direction,omitempty" example:"lower"`
	// 100 minus the absolute relative error in percent, floored at zero
	Accuracy float64 `json:"accuracy" example:"99.2"`
}

// AlertKind identifies which composition rule produced an alert.
type AlertKind string

const (
	AlertKindDiscrepancy AlertKind = "discrepancy"
	AlertKindComparison  AlertKind = "forecast_comparison"
	AlertKindThreshold   AlertKind = "threshold"
	AlertKindTrend       AlertKind = "trend"
)

// AlertSeverity maps to the banner variant rendered by the dashboard.
type AlertSeverity string

const (
	SeveritySuccess     AlertSeverity = "success"
	SeverityInfo        AlertSeverity = "info"
	SeverityWarning     AlertSeverity = "warning"
	SeverityDestructive AlertSeverity = "destructive"
)

// Alert is one advisory banner.
// @Description Advisory banner derived from the forecast analysis.
type Alert struct {
	Kind     AlertKind     `json:"kind" example:"threshold"`
	Severity AlertSeverity `json:"severity" example:"warning"`
	Title    string        `json:"title" example:"Threshold Alert - Action Recommended"`
	Message  string        `json:"message"`
}

// MetricReport is the full forecast analysis of one metric.
// @Description Forecast, trend, discrepancy and alerts for one metric.
type MetricReport struct {
	MetricID string `json:"metric_id" example:"activity"`
	Metric   string `json:"metric" example:"Physical Activity"`
	Unit     string `json:"unit" example:"Score"`
	// Most recent observation
	LastActual *float64 `json:"last_actual,omitempty" example:"58"`
	// Last minus second-to-last observation
	WeeklyChange *float64 `json:"weekly_change,omitempty" example:"-2"`
	// Nil when history has fewer than two numeric points
	Projection  *Projection         `json:"projection,omitempty"`
	Trend       Trend               `json:"trend" example:"downward"`
	TrendLabel  string              `json:"trend_label" example:"Declining"`
	Breach      ThresholdBreach     `json:"breach"`
	Discrepancy *Discrepancy        `json:"discrepancy,omitempty"`
	Comparison  *ForecastComparison `json:"comparison,omitempty"`
	// One-line outlook used by the compact dashboard cards
	Outlook string  `json:"outlook,omitempty" example:"Forecast shows a continuing downward trend. Close monitoring recommended."`
	Alerts  []Alert `json:"alerts"`
}

// ChartPoint is one week on the history and forecast chart.
// @Description Week-indexed chart point; absent series are omitted.
type ChartPoint struct {
	Week             int      `json:"week" example:"8"`
	Label            string   `json:"label" example:"W8"`
	Actual           *float64 `json:"actual,omitempty" example:"58"`
	PreviousForecast *float64 `json:"previous_forecast,omitempty" example:"59"`
	FutureForecast   *float64 `json:"future_forecast,omitempty" example:"58"`
	ThresholdLow     *float64 `json:"threshold_low,omitempty" example:"60"`
	ThresholdHigh    *float64 `json:"threshold_high,omitempty" example:"95"`
}

// ChartResponse is the response for the chart endpoint.
// @Description Chart data for a metric's history and forecast.
type ChartResponse struct {
	MetricID string       `json:"metric_id" example:"activity"`
	Metric   string       `json:"metric" example:"Physical Activity"`
	Unit     string       `json:"unit" example:"Score"`
	Points   []ChartPoint `json:"points"`
}

// WeeklyReport bundles the analysis of every metric for one report week.
// @Description Weekly wellness report.
type WeeklyReport struct {
	WeekStart   time.Time      `json:"week_start" example:"2025-09-16T00:00:00Z"`
	WeekEnd     time.Time      `json:"week_end" example:"2025-09-22T00:00:00Z"`
	Method      ForecastMethod `json:"method" example:"least_squares"`
	GeneratedAt time.Time      `json:"generated_at"`
	Metrics     []MetricReport `json:"metrics"`
	AlertCount  int            `json:"alert_count" example:"7"`
}
