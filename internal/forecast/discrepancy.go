package forecast

import (
	"math"

	"github.com/blaisecz/wellness-forecast/internal/domain"
)

// ComputeDiscrepancy compares the latest actual value with the forecast
// previously recorded for the same week.
//
// It returns nil when warningText is empty, when either value is unknown, when
// the forecast is zero, or when the relative deviation does not exceed
// DiscrepancyThreshold. Positive is set from the sign of the raw difference for
// every metric, including ones where a lower value is healthier.
func ComputeDiscrepancy(lastActual, lastForecast *float64, warningText string) *domain.Discrepancy {
	if warningText == "" || lastActual == nil || lastForecast == nil || *lastForecast == 0 {
		return nil
	}

	diff := *lastActual - *lastForecast
	rel := diff / *lastForecast
	if math.Abs(rel) <= DiscrepancyThreshold {
		return nil
	}

	return &domain.Discrepancy{
		Actual:             *lastActual,
		Forecast:           *lastForecast,
		RelativeDifference: math.Round(rel*10000) / 10000,
		Positive:           diff > 0,
		Text:               warningText,
	}
}

// CompareLastWeek reports how far the latest actual value landed from its forecast.
func CompareLastWeek(lastActual, lastForecast float64) domain.ForecastComparison {
	diff := lastActual - lastForecast
	cmp := domain.ForecastComparison{
		Forecast: lastForecast,
		Actual:   lastActual,
		Accuracy: accuracy(lastActual, lastForecast),
	}

	if math.Abs(diff) <= math.Abs(lastForecast*ComparisonTolerance) {
		cmp.WithinRange = true
		return cmp
	}

	cmp.Difference = math.Abs(diff)
	if diff > 0 {
		cmp.Direction = domain.DirectionHigher
	} else {
		cmp.Direction = domain.DirectionLower
	}
	return cmp
}

func accuracy(actual, forecast float64) float64 {
	if forecast == 0 {
		if actual == 0 {
			return 100
		}
		return 0
	}
	a := 100 - math.Abs((actual-forecast)/forecast*100)
	if a < 0 {
		a = 0
	}
	return math.Round(a*10) / 10
}
