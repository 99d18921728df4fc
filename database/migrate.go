package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tailorix_backend/internal/config"
	"tailorix_backend/internal/logger"
	"tailorix_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens (or returns the cached) GORM connection using the
// configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates all models and the supporting indexes the ranking
// queries rely on.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.SubscriptionPlan{},
		&models.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	// Partial index covering the discoverability predicate; the haversine
	// filter still scans it, but only over listed tailors.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_discoverable_location
		ON users (latitude, longitude)
		WHERE role = 'tailor' AND is_active AND subscription_active
	`).Error
	if err != nil {
		return fmt.Errorf("failed to create location index: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
