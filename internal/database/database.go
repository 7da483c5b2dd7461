package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ashacare-backend/internal/config"
	"ashacare-backend/internal/models"
)

// Open connects to the backing store and migrates the sync tables.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the patients and vaccinations tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Patient{}, &models.Vaccination{})
}
