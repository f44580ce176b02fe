package database

import (
	"fmt"

	"github.com/VendleServices/vendle-backend/internal/config"
	"github.com/VendleServices/vendle-backend/internal/models"
	chatmodels "github.com/VendleServices/vendle-backend/internal/models/chat"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens (or reuses) the GORM connection from config.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates/updates every table, including the chat schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS chat").Error; err != nil {
		return fmt.Errorf("failed to create chat schema: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.ContractorProfile{},
		&models.Claim{},
		&models.ClaimImage{},
		&models.ClaimPDF{},
		&models.Auction{},
		&models.Bid{},
		&models.ClaimInvitation{},
		&models.ProjectParticipant{},
		&models.Notification{},
		&chatmodels.Room{},
		&chatmodels.RoomParticipant{},
		&chatmodels.Message{},
	)
}
