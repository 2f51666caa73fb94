package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type options struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the wellnessctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:   "wellnessctl",
		Short: "Run the wellness forecast engine from the command line",
		Long: `wellnessctl runs the weekly wellness forecast over the sample report or a
YAML metrics file and prints projections, trends and alerts.

Settings can come from flags, a .wellnessctl.yaml config file or
WELLNESS_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./.wellnessctl.yaml)")
	flags.StringP("file", "f", "", "YAML metrics file (default is the built-in sample report)")
	flags.StringP("method", "m", string(domain.ForecastMethodLeastSquares), "projection method (two_point, least_squares)")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")

	opts.v.BindPFlag("file", flags.Lookup("file"))
	opts.v.BindPFlag("method", flags.Lookup("method"))
	opts.v.BindPFlag("output", flags.Lookup("output"))

	root.AddCommand(
		newReportCommand(opts),
		newForecastCommand(opts),
		newChartCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *options) initConfig() error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		o.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			o.v.AddConfigPath(home)
		}
		o.v.SetConfigType("yaml")
		o.v.SetConfigName(".wellnessctl")
	}

	o.v.SetEnvPrefix("WELLNESS")
	o.v.AutomaticEnv()

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func (o *options) method() (domain.ForecastMethod, error) {
	return domain.ParseForecastMethod(o.v.GetString("method"), domain.ForecastMethodLeastSquares)
}

func (o *options) format() (string, error) {
	switch f := o.v.GetString("output"); f {
	case "table", "json", "yaml":
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, f)
	}
}

func (o *options) metrics() ([]domain.MetricSeries, error) {
	return LoadMetrics(o.v.GetString("file"))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wellnessctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "wellnessctl", Version)
		},
	}
}

