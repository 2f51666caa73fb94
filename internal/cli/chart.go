package cli

import (
	"github.com/blaisecz/wellness-forecast/internal/forecast"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newChartCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chart <metric-id>",
		Short: "Print the week-by-week chart data for one metric",
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
			points := forecast.ChartData(series, report.Projection)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, points)
			case "yaml":
				return writeYAML(out, points)
			}

			table := tablewriter.NewWriter(out)
			table.Header("Week", "Actual", "Previous", "Future", "Low", "High")
			for _, p := range points {
				if err := table.Append(
					p.Label,
					formatOptional(p.Actual),
					formatOptional(p.PreviousForecast),
					formatOptional(p.FutureForecast),
					formatOptional(p.ThresholdLow),
					formatOptional(p.ThresholdHigh),
				); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
