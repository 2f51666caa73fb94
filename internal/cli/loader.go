package cli

import (
	"fmt"
	"os"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/seed"
	"gopkg.in/yaml.v3"
)

// metricFile is the on-disk layout accepted by --file.
type metricFile struct {
	Metrics []domain.MetricSeries `yaml:"metrics"`
}

// LoadMetrics reads metric series from a YAML file. An empty path returns
// the built-in sample report.
func LoadMetrics(path string) ([]domain.MetricSeries, error) {
	if path == "" {
		return seed.Metrics(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics file: %w", err)
	}

	var file metricFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse metrics file: %w", err)
	}
	if len(file.Metrics) == 0 {
		return nil, fmt.Errorf("%w: %s contains no metrics", domain.ErrInvalidInput, path)
	}

	seen := make(map[string]bool, len(file.Metrics))
	for i := range file.Metrics {
		m := &file.Metrics[i]
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("%w: duplicate metric id %s", domain.ErrConflict, m.ID)
		}
		seen[m.ID] = true
	}
	return file.Metrics, nil
}

func findMetric(metrics []domain.MetricSeries, id string) (domain.MetricSeries, error) {
	for _, m := range metrics {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.MetricSeries{}, fmt.Errorf("%w: metric %q", domain.ErrNotFound, id)
}
