package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables backing the entity store.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&participantModel{},
		&roomModel{},
		&bookingModel{},
	)
}
