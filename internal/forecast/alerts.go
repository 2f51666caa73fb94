package forecast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blaisecz/wellness-forecast/internal/domain"
)

// AlertInput holds the analysis results alert composition works from.
// Nil fields mean the corresponding analysis did not apply.
type AlertInput struct {
	Unit        string
	Threshold   *domain.Threshold
	Projection  *domain.Projection
	Trend       domain.Trend
	Breach      domain.ThresholdBreach
	Discrepancy *domain.Discrepancy
	Comparison  *domain.ForecastComparison
}

// ComposeAlerts builds the advisory banners in display order:
// discrepancy, last-week comparison, threshold, trend.
// Each gate is independent except that the trend alert is suppressed
// when the threshold alert fired.
func ComposeAlerts(in AlertInput) []domain.Alert {
	alerts := make([]domain.Alert, 0, 4)

	if d := in.Discrepancy; d != nil {
		if d.Positive {
			alerts = append(alerts, domain.Alert{
				Kind:     domain.AlertKindDiscrepancy,
				Severity: domain.SeveritySuccess,
				Title:    "Positive Forecast",
				Message:  d.Text,
			})
		} else {
			alerts = append(alerts, domain.Alert{
				Kind:     domain.AlertKindDiscrepancy,
				Severity: domain.SeverityDestructive,
				Title:    "Forecast Discrepancy Detected",
				Message:  d.Text,
			})
		}
	}

	if c := in.Comparison; c != nil {
		alerts = append(alerts, comparisonAlert(*c, in.Unit))
	}

	if in.Projection == nil {
		return alerts
	}

	if in.Breach.Breached {
		alerts = append(alerts, thresholdAlert(in.Trend, in.Breach, in.Threshold))
		return alerts
	}

	switch in.Trend {
	case domain.TrendUpward:
		alerts = append(alerts, domain.Alert{
			Kind:     domain.AlertKindTrend,
			Severity: domain.SeveritySuccess,
			Title:    "Trend Analysis",
			Message: fmt.Sprintf("Positive trend detected! AI forecasts continued improvement over the next %d weeks: %s",
				HorizonWeeks, trajectory(in.Projection.Values)),
		})
	case domain.TrendDownward:
		alerts = append(alerts, domain.Alert{
			Kind:     domain.AlertKindTrend,
			Severity: domain.SeverityInfo,
			Title:    "Trend Analysis",
			Message: fmt.Sprintf("Gradual decline observed. Predicted trajectory: %s. Consider lifestyle adjustments.",
				trajectory(in.Projection.Values)),
		})
	}

	return alerts
}

func comparisonAlert(c domain.ForecastComparison, unit string) domain.Alert {
	severity := domain.SeverityInfo
	if c.Accuracy > 85 {
		severity = domain.SeveritySuccess
	}

	msg := fmt.Sprintf("We predicted %s, your actual was %s", formatValue(roundHalfUp(c.Forecast)), formatValue(c.Actual))
	if c.WithinRange {
		msg += ", which was within the predicted range."
	} else {
		msg += fmt.Sprintf(". Difference: %s %s %s than predicted.", formatValue(roundHalfUp(c.Difference)), unit, c.Direction)
	}

	return domain.Alert{
		Kind:     domain.AlertKindComparison,
		Severity: severity,
		Title:    "Last Week's Forecast vs Actual",
		Message:  msg,
	}
}

// thresholdAlert words the alert by trend direction and quotes the matching
// boundary: low when falling, high when rising. A stable projection falls
// back to the boundary that was crossed.
func thresholdAlert(trend domain.Trend, breach domain.ThresholdBreach, threshold *domain.Threshold) domain.Alert {
	falling := breachFalling(trend, breach)

	limit := breach.Limit
	if threshold != nil {
		limit = threshold.High
		if falling {
			limit = threshold.Low
		}
	}

	var msg string
	if falling {
		msg = fmt.Sprintf("AI predicts scores will fall below healthy range (%s) within %d weeks.", formatValue(limit), HorizonWeeks)
	} else {
		msg = fmt.Sprintf("AI predicts scores may exceed healthy range (%s) within %d weeks.", formatValue(limit), HorizonWeeks)
	}

	return domain.Alert{
		Kind:     domain.AlertKindThreshold,
		Severity: domain.SeverityWarning,
		Title:    "Threshold Alert - Action Recommended",
		Message:  msg,
	}
}

// Outlook is the single-sentence future outlook shown on compact report cards.
// It returns an empty string when there is nothing to report.
func Outlook(trend domain.Trend, breach domain.ThresholdBreach) string {
	rangeMsg := "rise above healthy range."
	if breachFalling(trend, breach) {
		rangeMsg = "fall below healthy range."
	}

	switch {
	case trend == domain.TrendDownward && breach.Breached:
		return "Forecast shows downward trend, predicted to " + rangeMsg
	case trend == domain.TrendUpward && breach.Breached:
		return "Forecast shows upward trend, predicted to " + rangeMsg
	case trend == domain.TrendDownward:
		return "Forecast shows a continuing downward trend. Close monitoring recommended."
	case trend == domain.TrendUpward:
		return "Forecast shows a continuing upward trend. Close monitoring recommended."
	case breach.Breached:
		return "Forecast predicts metric will " + rangeMsg
	default:
		return ""
	}
}

// breachFalling reports whether a breach reads as falling below the range.
// The trend decides; a stable trend uses the crossed boundary.
func breachFalling(trend domain.Trend, breach domain.ThresholdBreach) bool {
	switch trend {
	case domain.TrendDownward:
		return true
	case domain.TrendUpward:
		return false
	default:
		return breach.Boundary == domain.BoundaryBelowLow
	}
}

func trajectory(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, " → ")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
