package repositories

import (
	"github.com/VendleServices/vendle-backend/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository struct{}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) Create(db *gorm.DB, participant *models.ProjectParticipant) error {
	return db.Create(participant).Error
}

func (r *ProjectRepository) ListByContractor(db *gorm.DB, contractorID string) ([]models.ProjectParticipant, error) {
	var participants []models.ProjectParticipant
	err := db.Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *ProjectRepository) ListByClaim(db *gorm.DB, claimID string) ([]models.ProjectParticipant, error) {
	var participants []models.ProjectParticipant
	err := db.Where("claim_id = ?", claimID).Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}
