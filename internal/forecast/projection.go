// Package forecast derives short-term projections, trend direction,
// forecast discrepancies and advisory alerts from a metric's weekly history.
//
// Every function in this package is pure: inputs are never modified and no
// state is kept between calls.
package forecast

import (
	"math"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const (
	// HorizonWeeks is the number of future weeks projected.
	HorizonWeeks = 3

	// RegressionWindow is the number of trailing points used by the least-squares fit.
	RegressionWindow = 4

	// DiscrepancyThreshold is the relative deviation above which a discrepancy is signalled.
	DiscrepancyThreshold = 0.15

	// ComparisonTolerance is the relative band reported as "within predicted range".
	ComparisonTolerance = 0.05
)

// Project computes a HorizonWeeks-step projection from history.
// It returns false when the trailing window holds fewer than two finite values.
func Project(history []float64, method domain.ForecastMethod) (domain.Projection, bool) {
	switch method {
	case domain.ForecastMethodTwoPoint:
		return projectTwoPoint(history)
	default:
		return projectLeastSquares(history)
	}
}

func projectTwoPoint(history []float64) (domain.Projection, bool) {
	if len(history) < 2 {
		return domain.Projection{}, false
	}
	last := history[len(history)-1]
	prev := history[len(history)-2]
	if !finite(last) || !finite(prev) {
		return domain.Projection{}, false
	}

	slope := last - prev
	values := make([]float64, HorizonWeeks)
	for k := 1; k <= HorizonWeeks; k++ {
		values[k-1] = roundHalfUp(last + float64(k)*slope)
	}

	return domain.Projection{
		Method: domain.ForecastMethodTwoPoint,
		Slope:  slope,
		Values: values,
	}, true
}

func projectLeastSquares(history []float64) (domain.Projection, bool) {
	window := history
	if len(window) > RegressionWindow {
		window = window[len(window)-RegressionWindow:]
	}
	if len(window) < 2 {
		return domain.Projection{}, false
	}

	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, v := range window {
		if !finite(v) {
			return domain.Projection{}, false
		}
		xs[i] = float64(i)
		ys[i] = v
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	n := float64(len(window))
	values := make([]float64, HorizonWeeks)
	for k := 1; k <= HorizonWeeks; k++ {
		values[k-1] = roundHalfUp(intercept + slope*(n-1+float64(k)))
	}

	return domain.Projection{
		Method: domain.ForecastMethodLeastSquares,
		Slope:  slope,
		Values: values,
	}, true
}

// ClassifyTrend returns downward when every value is strictly below its
// predecessor, upward when strictly above, and stable otherwise.
func ClassifyTrend(values []float64) domain.Trend {
	if len(values) < 2 {
		return domain.TrendStable
	}

	down, up := true, true
	for i := 1; i < len(values); i++ {
		if !(values[i] < values[i-1]) {
			down = false
		}
		if !(values[i] > values[i-1]) {
			up = false
		}
	}

	switch {
	case down:
		return domain.TrendDownward
	case up:
		return domain.TrendUpward
	default:
		return domain.TrendStable
	}
}

// CheckThresholdBreach reports whether any value leaves the healthy range.
// Values below the low limit are checked before values above the high limit.
func CheckThresholdBreach(values []float64, threshold *domain.Threshold) domain.ThresholdBreach {
	none := domain.ThresholdBreach{Boundary: domain.BoundaryNone}
	if threshold == nil {
		return none
	}

	for _, v := range values {
		if v < threshold.Low {
			return domain.ThresholdBreach{Breached: true, Boundary: domain.BoundaryBelowLow, Limit: threshold.Low}
		}
	}
	for _, v := range values {
		if v > threshold.High {
			return domain.ThresholdBreach{Breached: true, Boundary: domain.BoundaryAboveHigh, Limit: threshold.High}
		}
	}
	return none
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf,
// so -2.5 becomes -2 rather than -3.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
