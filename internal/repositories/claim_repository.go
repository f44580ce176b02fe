package repositories

import (
	"github.com/VendleServices/vendle-backend/internal/models"

	"gorm.io/gorm"
)

type ClaimRepository struct{}

func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{}
}

// Create persists the claim together with its image and PDF path records.
// Associations ride the same insert, so the write is atomic.
func (r *ClaimRepository) Create(db *gorm.DB, claim *models.Claim) error {
	return db.Create(claim).Error
}

func (r *ClaimRepository) FindByID(db *gorm.DB, id string) (*models.Claim, error) {
	var claim models.Claim
	err := db.Preload("Images").Preload("PDFs").First(&claim, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepository) ListByOwner(db *gorm.DB, ownerID string) ([]models.Claim, error) {
	var claims []models.Claim
	err := db.Preload("Images").Preload("PDFs").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *ClaimRepository) List(db *gorm.DB, status models.ClaimStatus) ([]models.Claim, error) {
	q := db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var claims []models.Claim
	if err := q.Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *ClaimRepository) UpdateStatus(db *gorm.DB, id string, status models.ClaimStatus) error {
	return db.Model(&models.Claim{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ClaimRepository) Delete(db *gorm.DB, id string) error {
	return db.Select("Images", "PDFs").Delete(&models.Claim{BaseModel: models.BaseModel{ID: id}}).Error
}

func (r *ClaimRepository) ListImages(db *gorm.DB, claimID string) ([]models.ClaimImage, error) {
	var images []models.ClaimImage
	err := db.Where("claim_id = ?", claimID).Order("created_at ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ClaimRepository) ListPDFs(db *gorm.DB, claimID string) ([]models.ClaimPDF, error) {
	var pdfs []models.ClaimPDF
	err := db.Where("claim_id = ?", claimID).Order("created_at ASC").Find(&pdfs).Error
	if err != nil {
		return nil, err
	}
	return pdfs, nil
}
