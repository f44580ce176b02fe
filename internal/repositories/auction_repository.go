package repositories

import (
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"

	"gorm.io/gorm"
)

type AuctionRepository struct{}

func NewAuctionRepository() *AuctionRepository {
	return &AuctionRepository{}
}

func (r *AuctionRepository) Create(db *gorm.DB, auction *models.Auction) error {
	return db.Create(auction).Error
}

func (r *AuctionRepository) FindByID(db *gorm.DB, id string) (*models.Auction, error) {
	var auction models.Auction
	if err := db.Preload("Claim").First(&auction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *AuctionRepository) FindByClaimID(db *gorm.DB, claimID string) (*models.Auction, error) {
	var auction models.Auction
	if err := db.First(&auction, "claim_id = ?", claimID).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *AuctionRepository) List(db *gorm.DB, status models.AuctionStatus) ([]models.Auction, error) {
	q := db.Preload("Claim").Order("ends_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var auctions []models.Auction
	if err := q.Find(&auctions).Error; err != nil {
		return nil, err
	}
	return auctions, nil
}

func (r *AuctionRepository) UpdateStatus(db *gorm.DB, id string, status models.AuctionStatus) error {
	return db.Model(&models.Auction{}).Where("id = ?", id).Update("status", status).Error
}

// RecordBid bumps the bid counter and lowers the current best bid when the
// new amount beats it.
func (r *AuctionRepository) RecordBid(db *gorm.DB, id string, amount float64) error {
	err := db.Model(&models.Auction{}).Where("id = ?", id).
		Update("bid_count", gorm.Expr("bid_count + 1")).Error
	if err != nil {
		return err
	}
	return db.Model(&models.Auction{}).
		Where("id = ? AND (current_bid IS NULL OR current_bid > ?)", id, amount).
		Update("current_bid", amount).Error
}

// CloseExpired closes every open auction whose window has passed and returns
// the affected auctions.
func (r *AuctionRepository) CloseExpired(db *gorm.DB, now time.Time) ([]models.Auction, error) {
	var expired []models.Auction
	err := db.Where("status = ? AND ends_at < ?", models.AuctionStatusOpen, now).Find(&expired).Error
	if err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(expired))
	for _, a := range expired {
		ids = append(ids, a.ID)
	}
	err = db.Model(&models.Auction{}).Where("id IN ?", ids).
		Update("status", models.AuctionStatusClosed).Error
	if err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *AuctionRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Auction{}, "id = ?", id).Error
}
