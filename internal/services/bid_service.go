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

type BidService struct {
	bidRepo        *repositories.BidRepository
	auctionRepo    *repositories.AuctionRepository
	contractorRepo *repositories.ContractorRepository
	invitationRepo *repositories.InvitationRepository
	notifications  *NotificationService
}

func NewBidService(
	bidRepo *repositories.BidRepository,
	auctionRepo *repositories.AuctionRepository,
	contractorRepo *repositories.ContractorRepository,
	invitationRepo *repositories.InvitationRepository,
	notifications *NotificationService,
) *BidService {
	return &BidService{
		bidRepo:        bidRepo,
		auctionRepo:    auctionRepo,
		contractorRepo: contractorRepo,
		invitationRepo: invitationRepo,
		notifications:  notifications,
	}
}

// PlaceBid records a contractor's offer. The contractor must hold an accepted
// invitation to the claim and a signed NDA, and the auction must still be
// open.
func (s *BidService) PlaceBid(db *gorm.DB, auctionID, contractorID string, req *dto.PlaceBidRequest) (*dto.BidResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidBidAmount
	}

	auction, err := s.auctionRepo.FindByID(db, auctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !auction.Active(time.Now()) {
		return nil, apperrors.ErrAuctionClosed
	}

	profile, err := s.contractorRepo.FindByUserID(db, contractorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInsufficientPermissions
		}
		return nil, apperrors.InternalError(err)
	}
	if !profile.NDASigned {
		return nil, apperrors.ErrNDARequired
	}

	inv, err := s.invitationRepo.FindByClaimAndContractor(db, auction.ClaimID, contractorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInsufficientPermissions
		}
		return nil, apperrors.InternalError(err)
	}
	if inv.Status != models.InvitationStatusAccepted {
		return nil, apperrors.NewForbiddenError("Invitation must be accepted before bidding")
	}

	bid := &models.Bid{
		AuctionID:            auctionID,
		ContractorID:         contractorID,
		Amount:               req.Amount,
		Materials:            req.Materials,
		Labor:                req.Labor,
		SubcontractorExpense: req.SubcontractorExpense,
		Overhead:             req.Overhead,
		Profit:               req.Profit,
		Allowance:            req.Allowance,
		EstimatePath:         req.EstimatePath,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.bidRepo.Create(tx, bid); err != nil {
			return err
		}
		return s.auctionRepo.RecordBid(tx, auctionID, req.Amount)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.NotifyNewBid(db, auction.OwnerID, auction.ClaimID, auctionID, req.Amount)

	resp := toBidResponse(bid, 0)
	return &resp, nil
}

// ListOwnBids returns the contractor's bid history.
func (s *BidService) ListOwnBids(db *gorm.DB, contractorID string) (*dto.BidListResponse, error) {
	bids, err := s.bidRepo.ListByContractor(db, contractorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.BidListResponse{Total: len(bids)}
	for i := range bids {
		resp.Bids = append(resp.Bids, toBidResponse(&bids[i], 0))
	}
	return resp, nil
}
