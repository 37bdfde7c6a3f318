package database

import (
	"fmt"

	"corb3d-backend/internal/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ContactMessage{},
		&models.PortfolioItem{},
		&models.PortfolioImage{},
		&models.SiteSetting{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
