package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
)

// ConnectPostgres opens the SQL database holding the notification delivery
// log and migrates its schema.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.NotificationLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate notification log: %w", err)
	}
	return db, nil
}
