package repositories

import (
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"

	"gorm.io/gorm"
)

type ContractorRepository struct{}

func NewContractorRepository() *ContractorRepository {
	return &ContractorRepository{}
}

func (r *ContractorRepository) Create(db *gorm.DB, profile *models.ContractorProfile) error {
	return db.Create(profile).Error
}

func (r *ContractorRepository) FindByUserID(db *gorm.DB, userID string) (*models.ContractorProfile, error) {
	var profile models.ContractorProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarkNDASigned records the NDA signature; idempotent for an already signed
// profile.
func (r *ContractorRepository) MarkNDASigned(db *gorm.DB, userID string, signedAt time.Time) error {
	return db.Model(&models.ContractorProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"nda_signed":    true,
			"nda_signed_at": signedAt,
		}).Error
}

func (r *ContractorRepository) List(db *gorm.DB) ([]models.ContractorProfile, error) {
	var profiles []models.ContractorProfile
	if err := db.Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
