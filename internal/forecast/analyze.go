package forecast

import (
	"strconv"

	"github.com/blaisecz/wellness-forecast/internal/domain"
)

// Analyze runs the full forecast pipeline over one metric.
func Analyze(series domain.MetricSeries, method domain.ForecastMethod) domain.MetricReport {
	report := domain.MetricReport{
		MetricID: series.ID,
		Metric:   series.Name,
		Unit:     series.Unit,
		Trend:    domain.TrendStable,
		Breach:   domain.ThresholdBreach{Boundary: domain.BoundaryNone},
	}

	var lastActual, lastForecast *float64
	if v, ok := series.LastActual(); ok {
		lastActual = &v
	}
	if v, ok := series.LastPreviousForecast(); ok {
		lastForecast = &v
	}
	report.LastActual = lastActual

	if n := len(series.History); n >= 2 && lastActual != nil && finite(series.History[n-2]) {
		change := *lastActual - series.History[n-2]
		report.WeeklyChange = &change
	}

	if proj, ok := Project(series.History, method); ok {
		report.Projection = &proj
		report.Trend = ClassifyTrend(proj.Values)
		report.Breach = CheckThresholdBreach(proj.Values, series.Threshold)
	}
	report.TrendLabel = report.Trend.Label()

	report.Discrepancy = ComputeDiscrepancy(lastActual, lastForecast, series.DiscrepancyWarning)
	if lastActual != nil && lastForecast != nil {
		cmp := CompareLastWeek(*lastActual, *lastForecast)
		report.Comparison = &cmp
	}

	if report.Projection != nil {
		report.Outlook = Outlook(report.Trend, report.Breach)
	}

	report.Alerts = ComposeAlerts(AlertInput{
		Unit:        series.Unit,
		Threshold:   series.Threshold,
		Projection:  report.Projection,
		Trend:       report.Trend,
		Breach:      report.Breach,
		Discrepancy: report.Discrepancy,
		Comparison:  report.Comparison,
	})

	return report
}

// ChartData lays out history, previous forecasts and the projection on a
// shared week axis. The future series starts at the last actual point so the
// two lines connect. A nil projection yields history only.
func ChartData(series domain.MetricSeries, proj *domain.Projection) []domain.ChartPoint {
	n := len(series.History)
	total := n
	if proj != nil {
		total += len(proj.Values)
	}

	points := make([]domain.ChartPoint, 0, total)
	for i := 0; i < total; i++ {
		week := i + 1
		p := domain.ChartPoint{
			Week:  week,
			Label: "W" + strconv.Itoa(week),
		}

		if i < n {
			p.Actual = domain.Float(series.History[i])
			if i < len(series.PreviousForecast) && series.PreviousForecast[i] != nil {
				p.PreviousForecast = domain.Float(*series.PreviousForecast[i])
			}
			if proj != nil && i == n-1 {
				p.FutureForecast = domain.Float(series.History[i])
			}
		} else {
			p.FutureForecast = domain.Float(proj.Values[i-n])
		}

		if t := series.Threshold; t != nil {
			p.ThresholdLow = domain.Float(t.Low)
			p.ThresholdHigh = domain.Float(t.High)
		}

		points = append(points, p)
	}

	return points
}
