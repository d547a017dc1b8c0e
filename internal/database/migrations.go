package database

import (
	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MenuItem{},
		&models.InventoryItem{},
		&models.StaffMember{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
}
