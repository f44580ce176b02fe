package repositories

import (
	"github.com/VendleServices/vendle-backend/internal/models"

	"gorm.io/gorm"
)

type BidRepository struct{}

func NewBidRepository() *BidRepository {
	return &BidRepository{}
}

func (r *BidRepository) Create(db *gorm.DB, bid *models.Bid) error {
	return db.Create(bid).Error
}

func (r *BidRepository) FindByID(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := db.First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// ListByAuction returns the auction's bids under the documented sort
// contract: amount ascending, ties broken by creation time.
func (r *BidRepository) ListByAuction(db *gorm.DB, auctionID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Where("auction_id = ?", auctionID).
		Order("amount ASC, created_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *BidRepository) ListByContractor(db *gorm.DB, contractorID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *BidRepository) CountByContractor(db *gorm.DB, contractorID string) (int64, error) {
	var count int64
	err := db.Model(&models.Bid{}).Where("contractor_id = ?", contractorID).Count(&count).Error
	return count, err
}

// CountWinsByContractor counts closed auctions where the contractor holds the
// lowest bid.
func (r *BidRepository) CountWinsByContractor(db *gorm.DB, contractorID string) (int64, error) {
	var count int64
	err := db.Model(&models.Auction{}).
		Joins("JOIN bids ON bids.auction_id = auctions.id").
		Where("auctions.status = ?", models.AuctionStatusClosed).
		Where("bids.contractor_id = ?", contractorID).
		Where("bids.amount = auctions.current_bid").
		Count(&count).Error
	return count, err
}
