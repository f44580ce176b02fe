package repositories

import (
	"github.com/VendleServices/vendle-backend/internal/models"

	"gorm.io/gorm"
)

type InvitationRepository struct{}

func NewInvitationRepository() *InvitationRepository {
	return &InvitationRepository{}
}

func (r *InvitationRepository) Create(db *gorm.DB, inv *models.ClaimInvitation) error {
	return db.Create(inv).Error
}

func (r *InvitationRepository) FindByID(db *gorm.DB, id string) (*models.ClaimInvitation, error) {
	var inv models.ClaimInvitation
	if err := db.Preload("Claim").First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvitationRepository) ListByContractor(db *gorm.DB, contractorID string) ([]models.ClaimInvitation, error) {
	var invitations []models.ClaimInvitation
	err := db.Preload("Claim").
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *InvitationRepository) ListByClaim(db *gorm.DB, claimID string) ([]models.ClaimInvitation, error) {
	var invitations []models.ClaimInvitation
	err := db.Where("claim_id = ?", claimID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *InvitationRepository) FindByClaimAndContractor(db *gorm.DB, claimID, contractorID string) (*models.ClaimInvitation, error) {
	var inv models.ClaimInvitation
	err := db.First(&inv, "claim_id = ? AND contractor_id = ?", claimID, contractorID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Transition moves a pending invitation to a terminal status. The WHERE on
// the current status makes concurrent transitions race-safe: the loser sees
// zero affected rows.
func (r *InvitationRepository) Transition(db *gorm.DB, id string, to models.InvitationStatus) (bool, error) {
	result := db.Model(&models.ClaimInvitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
