package services

import (
	"errors"
	"time"

	"github.com/VendleServices/vendle-backend/internal/algorithms"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContractorService struct {
	contractorRepo *repositories.ContractorRepository
	invitationRepo *repositories.InvitationRepository
	projectRepo    *repositories.ProjectRepository
	bidRepo        *repositories.BidRepository
	claimRepo      *repositories.ClaimRepository
}

func NewContractorService(
	contractorRepo *repositories.ContractorRepository,
	invitationRepo *repositories.InvitationRepository,
	projectRepo *repositories.ProjectRepository,
	bidRepo *repositories.BidRepository,
	claimRepo *repositories.ClaimRepository,
) *ContractorService {
	return &ContractorService{
		contractorRepo: contractorRepo,
		invitationRepo: invitationRepo,
		projectRepo:    projectRepo,
		bidRepo:        bidRepo,
		claimRepo:      claimRepo,
	}
}

// GetStatus summarizes the contractor's platform standing.
func (s *ContractorService) GetStatus(db *gorm.DB, userID string) (*dto.ContractorStatusResponse, error) {
	profile, err := s.contractorRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	invitations, err := s.invitationRepo.ListByContractor(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	pending := 0
	for _, inv := range invitations {
		if inv.Status == models.InvitationStatusPending {
			pending++
		}
	}

	projects, err := s.projectRepo.ListByContractor(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalBids, err := s.bidRepo.CountByContractor(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	wins, err := s.bidRepo.CountWinsByContractor(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ContractorStatusResponse{
		UserID:             profile.UserID,
		CompanyName:        profile.CompanyName,
		City:               profile.City,
		NDASigned:          profile.NDASigned,
		NDASignedAt:        profile.NDASignedAt,
		PendingInvitations: pending,
		ActiveProjects:     len(projects),
		TotalBids:          totalBids,
		AuctionsWon:        wins,
	}, nil
}

// SignNDA records the signature. Idempotent: re-signing keeps the original
// timestamp.
func (s *ContractorService) SignNDA(db *gorm.DB, userID string) (*dto.ContractorStatusResponse, error) {
	profile, err := s.contractorRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !profile.NDASigned {
		if err := s.contractorRepo.MarkNDASigned(db, userID, time.Now()); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetStatus(db, userID)
}

func (s *ContractorService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateContractorProfileRequest) error {
	profile, err := s.contractorRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.LicenseNo != nil {
		updates["license_no"] = *req.LicenseNo
	}
	if len(updates) == 0 {
		return nil
	}

	err = db.Model(&models.ContractorProfile{}).
		Where("user_id = ?", profile.UserID).
		Updates(updates).Error
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Analyze ranks every contractor on the platform against the claim, so the
// owner can decide whom to invite.
func (s *ContractorService) Analyze(db *gorm.DB, claimID, ownerID string, limit int) (*dto.ContractorAnalysisResponse, error) {
	claim, err := s.claimRepo.FindByID(db, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if claim.OwnerID != ownerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	candidates, err := s.contractorRepo.List(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := algorithms.RankContractors(claim, candidates, func(userID string) algorithms.ContractorStats {
		totalBids, err := s.bidRepo.CountByContractor(db, userID)
		if err != nil {
			return algorithms.ContractorStats{}
		}
		wins, err := s.bidRepo.CountWinsByContractor(db, userID)
		if err != nil {
			return algorithms.ContractorStats{TotalBids: totalBids}
		}
		return algorithms.ContractorStats{TotalBids: totalBids, AuctionsWon: wins}
	})

	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}

	resp := &dto.ContractorAnalysisResponse{ClaimID: claimID}
	for _, sc := range ranked[:limit] {
		resp.Recommendations = append(resp.Recommendations, dto.ContractorRecommendation{
			ContractorID: sc.Profile.UserID,
			CompanyName:  sc.Profile.CompanyName,
			City:         sc.Profile.City,
			Score:        sc.Score,
			Reasons:      sc.Reasons,
		})
	}
	return resp, nil
}
