package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/forecast"
	"github.com/blaisecz/wellness-forecast/internal/seed"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newReportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Analyze every metric and print the weekly report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := opts.method()
			if err != nil {
				return err
			}
			format, err := opts.format()
			if err != nil {
				return err
			}
			metrics, err := opts.metrics()
			if err != nil {
				return err
			}

			report := BuildReport(metrics, method)
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, report)
			case "yaml":
				return writeYAML(out, report)
			default:
				return renderReport(out, report)
			}
		},
	}
}

// BuildReport runs the forecast analysis over every metric in order.
func BuildReport(metrics []domain.MetricSeries, method domain.ForecastMethod) domain.WeeklyReport {
	report := domain.WeeklyReport{
		WeekStart: seed.ReportWeekStart,
		WeekEnd:   seed.ReportWeekEnd,
		Method:    method,
		Metrics:   make([]domain.MetricReport, 0, len(metrics)),
	}
	for _, m := range metrics {
		r := forecast.Analyze(m, method)
		report.AlertCount += len(r.Alerts)
		report.Metrics = append(report.Metrics, r)
	}
	return report
}

func renderReport(w io.Writer, report domain.WeeklyReport) error {
	fmt.Fprintf(w, "Weekly report %s - %s (method %s)\n\n",
		report.WeekStart.Format("2006-01-02"), report.WeekEnd.Format("2006-01-02"), report.Method)

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Last", "Change", "Forecast", "Trend", "Range", "Alerts")
	for _, r := range report.Metrics {
		var values []float64
		if r.Projection != nil {
			values = r.Projection.Values
		}
		if err := table.Append(
			r.Metric,
			formatOptional(r.LastActual),
			formatOptional(r.WeeklyChange),
			formatValues(values),
			r.TrendLabel,
			breachLabel(r.Breach),
			strconv.Itoa(len(r.Alerts)),
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, r := range report.Metrics {
		for _, a := range r.Alerts {
			fmt.Fprintf(w, "[%s] %s: %s\n    %s\n", a.Severity, r.Metric, a.Title, a.Message)
		}
	}
	return nil
}

func breachLabel(b domain.ThresholdBreach) string {
	switch b.Boundary {
	case domain.BoundaryBelowLow:
		return "below " + formatValue(b.Limit)
	case domain.BoundaryAboveHigh:
		return "above " + formatValue(b.Limit)
	default:
		return "ok"
	}
}
