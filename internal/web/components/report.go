package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const dateLayout = "Jan 2, 2006"

// WeeklyReportPage renders the full weekly report with one card per metric.
func WeeklyReportPage(report *domain.WeeklyReport, metrics []domain.MetricSeries) g.Node {
	byID := make(map[string]domain.MetricSeries, len(metrics))
	for _, m := range metrics {
		byID[m.ID] = m
	}

	return Layout(
		PageConfig{Title: "Weekly Wellness Report"},
		Main(
			Class("container mx-auto px-4 py-8"),
			ReportHeader(report),
			Div(
				Class("grid gap-6 md:grid-cols-2"),
				g.Group(g.Map(report.Metrics, func(r domain.MetricReport) g.Node {
					return MetricCard(byID[r.MetricID], r)
				})),
			),
			Footer(
				Class("mt-10 text-sm opacity-70"),
				A(Href("/swagger/index.html"), g.Text("API documentation")),
			),
		),
	)
}

func ReportHeader(report *domain.WeeklyReport) g.Node {
	return Header(
		Class("mb-8"),
		H1(Class("font-bold text-3xl"), g.Text("Weekly Wellness Report")),
		P(
			Class("mt-2 opacity-80"),
			g.Text(report.WeekStart.Format(dateLayout)+" - "+report.WeekEnd.Format(dateLayout)),
		),
		P(
			Class("mt-1 text-sm opacity-70"),
			g.Textf("%d alerts · forecast method %s", report.AlertCount, report.Method),
		),
	)
}

// MetricCard is the dashboard card for one metric.
func MetricCard(series domain.MetricSeries, r domain.MetricReport) g.Node {
	return Section(
		Class("card bg-base-200 shadow"),
		g.Attr("data-metric", r.MetricID),
		Div(
			Class("card-body"),
			Div(
				Class("flex items-center justify-between"),
				H2(Class("card-title"), g.Text(r.Metric)),
				Span(Class("badge "+trendBadgeClass(r.Trend)), g.Text(r.TrendLabel)),
			),
			Div(
				Class("flex gap-6 mt-2"),
				scoreStat("Your score", series.UserScore, r.Unit),
				scoreStat("Average", series.AvgScore, r.Unit),
				g.Iff(series.Threshold != nil, func() g.Node { return thresholdStat(series.Threshold) }),
			),
			g.If(series.Analysis != "", P(Class("mt-3"), g.Text(series.Analysis))),
			g.Iff(r.Projection != nil, func() g.Node { return projectionRow(r.Projection) }),
			g.If(r.Outlook != "", P(Class("mt-2 italic"), g.Text(r.Outlook))),
			Div(
				Class("flex flex-col gap-2 mt-4"),
				g.Group(g.Map(r.Alerts, AlertBanner)),
			),
		),
	)
}

// AlertBanner renders one advisory banner using the severity's variant.
func AlertBanner(a domain.Alert) g.Node {
	return Div(
		Class("alert "+alertClass(a.Severity)),
		g.Attr("role", "alert"),
		g.Attr("data-kind", string(a.Kind)),
		Div(
			Strong(g.Text(a.Title)),
			P(g.Text(a.Message)),
		),
	)
}

func scoreStat(label, value, unit string) g.Node {
	if value == "" {
		value = "-"
	}
	return Div(
		Div(Class("text-xs uppercase opacity-70"), g.Text(label)),
		Div(Class("font-semibold text-xl"), g.Text(value)),
		Div(Class("text-xs opacity-70"), g.Text(unit)),
	)
}

func thresholdStat(t *domain.Threshold) g.Node {
	return Div(
		Div(Class("text-xs uppercase opacity-70"), g.Text("Healthy range")),
		Div(Class("font-semibold text-xl"), g.Text(formatNumber(t.Low)+"–"+formatNumber(t.High))),
	)
}

func projectionRow(p *domain.Projection) g.Node {
	values := make([]string, len(p.Values))
	for i, v := range p.Values {
		values[i] = formatNumber(v)
	}
	return P(
		Class("mt-2 text-sm"),
		Span(Class("opacity-70"), g.Text("Next 3 weeks: ")),
		g.Text(strings.Join(values, " → ")),
	)
}

func trendBadgeClass(t domain.Trend) string {
	switch t {
	case domain.TrendUpward:
		return "badge-success"
	case domain.TrendDownward:
		return "badge-warning"
	default:
		return "badge-ghost"
	}
}

func alertClass(s domain.AlertSeverity) string {
	switch s {
	case domain.SeveritySuccess:
		return "alert-success"
	case domain.SeverityWarning:
		return "alert-warning"
	case domain.SeverityDestructive:
		return "alert-error"
	default:
		return "alert-info"
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.1f", v)
}
