package repositories

import (
	"fmt"

	"ivr/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables backing the GORM repositories.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.MenuItem{}, &models.User{}, &models.Cart{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
