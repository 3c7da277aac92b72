package database

import (
	"fmt"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Project{},
		&models.Timesheet{},
		&models.TimeEntry{},
		&models.Invoice{},
		&models.Estimate{},
		&models.EstimateItem{},
		&models.RequestLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
