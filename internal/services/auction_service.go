package services

import (
	"errors"
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuctionService struct {
	auctionRepo *repositories.AuctionRepository
	bidRepo     *repositories.BidRepository
	claimRepo   *repositories.ClaimRepository
}

func NewAuctionService(
	auctionRepo *repositories.AuctionRepository,
	bidRepo *repositories.BidRepository,
	claimRepo *repositories.ClaimRepository,
) *AuctionService {
	return &AuctionService{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		claimRepo:   claimRepo,
	}
}

// GetSummary aggregates the auction with its ranked bids. Only the auction
// owner and admins see the bid list.
func (s *AuctionService) GetSummary(db *gorm.DB, auctionID, viewerID string, role models.UserRole) (*dto.AuctionSummary, error) {
	auction, err := s.auctionRepo.FindByID(db, auctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if auction.OwnerID != viewerID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	bids, err := s.bidRepo.ListByAuction(db, auctionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := RankBids(bids)
	summary := &dto.AuctionSummary{
		Auction:          toAuctionResponse(auction),
		Bids:             ranked,
		RemainingSeconds: remainingSeconds(auction, time.Now()),
	}
	if lowest := LowestBid(bids); lowest != nil {
		r := toBidResponse(lowest, 1)
		summary.LowestBid = &r
	}
	return summary, nil
}

func (s *AuctionService) ListOwn(db *gorm.DB, ownerID string, status models.AuctionStatus) (*dto.AuctionListResponse, error) {
	auctions, err := s.auctionRepo.List(db, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.AuctionListResponse{}
	for i := range auctions {
		if auctions[i].OwnerID != ownerID {
			continue
		}
		resp.Auctions = append(resp.Auctions, toAuctionResponse(&auctions[i]))
	}
	resp.Total = len(resp.Auctions)
	return resp, nil
}

// Close ends an open auction ahead of its window. Owner only.
func (s *AuctionService) Close(db *gorm.DB, auctionID, ownerID string) error {
	auction, err := s.auctionRepo.FindByID(db, auctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if auction.OwnerID != ownerID {
		return apperrors.ErrInsufficientPermissions
	}
	if auction.Status != models.AuctionStatusOpen {
		return apperrors.ErrAuctionClosed
	}

	if err := s.auctionRepo.UpdateStatus(db, auctionID, models.AuctionStatusClosed); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// LowestBid returns the bid with the smallest amount, breaking ties by
// earliest creation. Returns nil for an empty slice. The winner is computed
// here rather than trusted from any stored ordering.
func LowestBid(bids []models.Bid) *models.Bid {
	if len(bids) == 0 {
		return nil
	}

	lowest := &bids[0]
	for i := 1; i < len(bids); i++ {
		b := &bids[i]
		if b.Amount < lowest.Amount ||
			(b.Amount == lowest.Amount && b.CreatedAt.Before(lowest.CreatedAt)) {
			lowest = b
		}
	}
	return lowest
}

// RankBids returns bid responses ordered by amount ascending with ties broken
// by creation time, rank 1 being the current winner.
func RankBids(bids []models.Bid) []dto.BidResponse {
	sorted := make([]models.Bid, len(bids))
	copy(sorted, bids)

	// Insertion sort keeps equal amounts in arrival order.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, b := &sorted[j-1], &sorted[j]
			if b.Amount < a.Amount ||
				(b.Amount == a.Amount && b.CreatedAt.Before(a.CreatedAt)) {
				sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			} else {
				break
			}
		}
	}

	out := make([]dto.BidResponse, 0, len(sorted))
	for i := range sorted {
		out = append(out, toBidResponse(&sorted[i], i+1))
	}
	return out
}

func remainingSeconds(auction *models.Auction, now time.Time) int64 {
	if auction.Status != models.AuctionStatusOpen {
		return 0
	}
	remaining := auction.EndsAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}

func toAuctionResponse(a *models.Auction) dto.AuctionResponse {
	return dto.AuctionResponse{
		ID:          a.ID,
		ClaimID:     a.ClaimID,
		Status:      string(a.Status),
		StartingBid: a.StartingBid,
		CurrentBid:  a.CurrentBid,
		BidCount:    a.BidCount,
		EndsAt:      a.EndsAt,
		CreatedAt:   a.CreatedAt,
	}
}

func toBidResponse(b *models.Bid, rank int) dto.BidResponse {
	return dto.BidResponse{
		ID:                   b.ID,
		AuctionID:            b.AuctionID,
		ContractorID:         b.ContractorID,
		Amount:               b.Amount,
		Rank:                 rank,
		Materials:            b.Materials,
		Labor:                b.Labor,
		SubcontractorExpense: b.SubcontractorExpense,
		Overhead:             b.Overhead,
		Profit:               b.Profit,
		Allowance:            b.Allowance,
		EstimatePath:         b.EstimatePath,
		CreatedAt:            b.CreatedAt,
	}
}
