package seed

import (
	"fmt"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables used by the API.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.MetricSeries{}, &domain.DemoRequest{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Run migrates and seeds the sample metrics. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	for _, m := range Metrics() {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("invalid fixture %s: %w", m.ID, err)
		}
		if err := db.Where("id = ?", m.ID).FirstOrCreate(&m).Error; err != nil {
			return fmt.Errorf("failed to create metric %s: %w", m.ID, err)
		}
	}

	log := logger.WithComponent("seed")
	log.Info().Msg("seed completed")
	return nil
}
