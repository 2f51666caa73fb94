package cli

import (
	"fmt"
	"io"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/forecast"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newForecastCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast <metric-id>",
		Short: "Print the forecast analysis for one metric",
		Args:  cobra.ExactArgs(1),
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
			series, err := findMetric(metrics, args[0])
			if err != nil {
				return err
			}

			report := forecast.Analyze(series, method)
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, report)
			case "yaml":
				return writeYAML(out, report)
			default:
				return renderForecast(out, report)
			}
		},
	}
}

func renderForecast(w io.Writer, r domain.MetricReport) error {
	fmt.Fprintf(w, "%s (%s)\n", r.Metric, r.Unit)

	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")
	rows := [][]string{
		{"Last actual", formatOptional(r.LastActual)},
		{"Weekly change", formatOptional(r.WeeklyChange)},
		{"Trend", r.TrendLabel},
		{"Range", breachLabel(r.Breach)},
	}
	if p := r.Projection; p != nil {
		rows = append(rows,
			[]string{"Method", string(p.Method)},
			[]string{"Slope", formatValue(p.Slope)},
			[]string{"Forecast", formatValues(p.Values)},
		)
	}
	if c := r.Comparison; c != nil {
		rows = append(rows, []string{"Last week accuracy", formatValue(c.Accuracy) + "%"})
	}
	if r.Outlook != "" {
		rows = append(rows, []string{"Outlook", r.Outlook})
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, a := range r.Alerts {
		fmt.Fprintf(w, "[%s] %s\n    %s\n", a.Severity, a.Title, a.Message)
	}
	return nil
}
